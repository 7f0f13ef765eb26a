// Package model contains the shared data model.
//
// This package defines the interfaces and data structures shared
// by most other packages in this repository. By keeping them into
// a leaf package we avoid import cycles between the packages that
// produce such data structures and the packages consuming them.
package model
