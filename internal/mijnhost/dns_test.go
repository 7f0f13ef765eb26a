package mijnhost

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/testingx"
)

func Test_apiPathForDomain(t *testing.T) {
	t.Run("with an ASCII domain", func(t *testing.T) {
		path, err := apiPathForDomain("example.nl")
		if err != nil {
			t.Fatal(err)
		}
		if path != "/domains/example.nl/dns" {
			t.Fatal("unexpected path", path)
		}
	})

	t.Run("with a unicode domain", func(t *testing.T) {
		path, err := apiPathForDomain("münchen.example")
		if err != nil {
			t.Fatal(err)
		}
		if path != "/domains/xn--mnchen-3ya.example/dns" {
			t.Fatal("unexpected path", path)
		}
	})

	t.Run("with an invalid domain", func(t *testing.T) {
		path, err := apiPathForDomain("host:port.example")
		if err == nil {
			t.Fatal("expected an error")
		}
		if path != "" {
			t.Fatal("expected an empty path", path)
		}
	})
}

func TestSessionGetDNSRecords(t *testing.T) {
	t.Run("with existing records", func(t *testing.T) {
		expect := []model.DNSRecord{
			{Type: "A", Name: "www", Value: "130.89.148.77", TTL: 900},
			{Type: "TXT", Name: "@", Value: "v=spf1 -all", TTL: 300},
		}
		api := &testingx.HostAPI{}
		api.SetDomain("example.nl", expect)
		server := testingx.MustNewHTTPServer(api)
		defer server.Close()
		sess := NewSession(server.URL, "key", http.DefaultClient, nil)
		records, err := sess.GetDNSRecords(context.Background(), "example.nl")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(expect, records); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with a unicode domain name", func(t *testing.T) {
		expect := []model.DNSRecord{
			{Type: "A", Name: "www", Value: "130.89.148.77", TTL: 900},
		}
		api := &testingx.HostAPI{}
		api.SetDomain("xn--mnchen-3ya.example", expect)
		server := testingx.MustNewHTTPServer(api)
		defer server.Close()
		sess := NewSession(server.URL, "key", http.DefaultClient, nil)
		records, err := sess.GetDNSRecords(context.Background(), "münchen.example")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(expect, records); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with an unknown domain", func(t *testing.T) {
		api := &testingx.HostAPI{}
		server := testingx.MustNewHTTPServer(api)
		defer server.Close()
		sess := NewSession(server.URL, "key", http.DefaultClient, nil)
		records, err := sess.GetDNSRecords(context.Background(), "missing.nl")
		var failure *ErrAPIStatus
		if !errors.As(err, &failure) {
			t.Fatal("unexpected error", err)
		}
		if failure.Status != 404 {
			t.Fatal("unexpected status", failure.Status)
		}
		if records != nil {
			t.Fatal("expected nil records")
		}
	})
}

func TestSessionPutDNSRecords(t *testing.T) {
	t.Run("on success the fake stores the new records", func(t *testing.T) {
		api := &testingx.HostAPI{}
		api.SetDomain("example.nl", []model.DNSRecord{
			{Type: "A", Name: "www", Value: "10.0.0.1", TTL: 900},
		})
		server := testingx.MustNewHTTPServer(api)
		defer server.Close()
		sess := NewSession(server.URL, "key", http.DefaultClient, nil)
		update := []model.DNSRecord{
			{Type: "A", Name: "www", Value: "130.89.148.77", TTL: 900},
			{Type: "CNAME", Name: "mail", Value: "mx.example.nl.", TTL: 3600},
		}
		if err := sess.PutDNSRecords(context.Background(), "example.nl", update); err != nil {
			t.Fatal(err)
		}
		stored, found := api.Records("example.nl")
		if !found {
			t.Fatal("expected to find the domain")
		}
		if diff := cmp.Diff(update, stored); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("a rejected update surfaces the provider description", func(t *testing.T) {
		api := &testingx.HostAPI{
			ValidatePutRecords: func(domain string, records []model.DNSRecord) error {
				return errors.New("TTL out of range")
			},
		}
		api.SetDomain("example.nl", nil)
		server := testingx.MustNewHTTPServer(api)
		defer server.Close()
		sess := NewSession(server.URL, "key", http.DefaultClient, nil)
		err := sess.PutDNSRecords(context.Background(), "example.nl", []model.DNSRecord{
			{Type: "A", Name: "www", Value: "130.89.148.77", TTL: -1},
		})
		var failure *ErrAPIStatus
		if !errors.As(err, &failure) {
			t.Fatal("unexpected error", err)
		}
		if failure.Status != 400 {
			t.Fatal("unexpected status", failure.Status)
		}
		if failure.StatusDescription != "TTL out of range" {
			t.Fatal("unexpected description", failure.StatusDescription)
		}
	})
}

func Test_mergeRecord(t *testing.T) {
	records := []model.DNSRecord{
		{Type: "A", Name: "www", Value: "10.0.0.1", TTL: 900},
		{Type: "TXT", Name: "@", Value: "v=spf1 -all", TTL: 300},
	}

	t.Run("replaces a record with the same type and name", func(t *testing.T) {
		update := model.DNSRecord{Type: "A", Name: "www", Value: "130.89.148.77", TTL: 900}
		got := mergeRecord("example.nl", records, update)
		expect := []model.DNSRecord{
			update,
			{Type: "TXT", Name: "@", Value: "v=spf1 -all", TTL: 300},
		}
		if diff := cmp.Diff(expect, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("a qualified name matches its relative form", func(t *testing.T) {
		update := model.DNSRecord{Type: "A", Name: "WWW.Example.NL.", Value: "130.89.148.77", TTL: 900}
		got := mergeRecord("example.nl", records, update)
		if len(got) != 2 {
			t.Fatal("expected the record to be replaced, got", got)
		}
		if got[0].Value != "130.89.148.77" {
			t.Fatal("unexpected value", got[0].Value)
		}
	})

	t.Run("a different type appends instead of replacing", func(t *testing.T) {
		update := model.DNSRecord{Type: "AAAA", Name: "www", Value: "::1", TTL: 900}
		got := mergeRecord("example.nl", records, update)
		expect := append(append([]model.DNSRecord{}, records...), update)
		if diff := cmp.Diff(expect, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("a new name appends", func(t *testing.T) {
		update := model.DNSRecord{Type: "A", Name: "mail", Value: "10.0.0.2", TTL: 900}
		got := mergeRecord("example.nl", records, update)
		expect := append(append([]model.DNSRecord{}, records...), update)
		if diff := cmp.Diff(expect, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("the input slice is not modified", func(t *testing.T) {
		update := model.DNSRecord{Type: "A", Name: "www", Value: "130.89.148.77", TTL: 900}
		_ = mergeRecord("example.nl", records, update)
		if records[0].Value != "10.0.0.1" {
			t.Fatal("the input slice was modified")
		}
	})
}

func TestSessionUpsertDNSRecord(t *testing.T) {
	t.Run("replaces an existing record", func(t *testing.T) {
		api := &testingx.HostAPI{}
		api.SetDomain("example.nl", []model.DNSRecord{
			{Type: "A", Name: "www", Value: "10.0.0.1", TTL: 900},
			{Type: "TXT", Name: "@", Value: "v=spf1 -all", TTL: 300},
		})
		server := testingx.MustNewHTTPServer(api)
		defer server.Close()
		sess := NewSession(server.URL, "key", http.DefaultClient, nil)
		update := model.DNSRecord{Type: "A", Name: "www", Value: "130.89.148.77", TTL: 900}
		if err := sess.UpsertDNSRecord(context.Background(), "example.nl", update); err != nil {
			t.Fatal(err)
		}
		stored, _ := api.Records("example.nl")
		expect := []model.DNSRecord{
			update,
			{Type: "TXT", Name: "@", Value: "v=spf1 -all", TTL: 300},
		}
		if diff := cmp.Diff(expect, stored); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("appends a new record", func(t *testing.T) {
		api := &testingx.HostAPI{}
		api.SetDomain("example.nl", []model.DNSRecord{
			{Type: "A", Name: "www", Value: "10.0.0.1", TTL: 900},
		})
		server := testingx.MustNewHTTPServer(api)
		defer server.Close()
		sess := NewSession(server.URL, "key", http.DefaultClient, nil)
		update := model.DNSRecord{Type: "CNAME", Name: "blog", Value: "www.example.nl.", TTL: 3600}
		if err := sess.UpsertDNSRecord(context.Background(), "example.nl", update); err != nil {
			t.Fatal(err)
		}
		stored, _ := api.Records("example.nl")
		expect := []model.DNSRecord{
			{Type: "A", Name: "www", Value: "10.0.0.1", TTL: 900},
			update,
		}
		if diff := cmp.Diff(expect, stored); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with an unknown domain", func(t *testing.T) {
		api := &testingx.HostAPI{}
		server := testingx.MustNewHTTPServer(api)
		defer server.Close()
		sess := NewSession(server.URL, "key", http.DefaultClient, nil)
		update := model.DNSRecord{Type: "A", Name: "www", Value: "130.89.148.77", TTL: 900}
		err := sess.UpsertDNSRecord(context.Background(), "example.nl", update)
		var failure *ErrAPIStatus
		if !errors.As(err, &failure) {
			t.Fatal("unexpected error", err)
		}
		if failure.Status != 404 {
			t.Fatal("unexpected status", failure.Status)
		}
	})
}
