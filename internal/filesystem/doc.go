// Package filesystem decides what a path names and writes project trees to disk.
//
// Paths coming from brace patterns carry no type information, so IsFilePath
// applies a naming rule: a trailing slash means directory, and a basename
// with an inner or leading dot (README.md, .gitkeep) means file. Everything
// else, including extensionless names like Makefile, is a directory.
//
// Plan and PlanPaths translate trees and path lists into generator
// operations; Materialize and MaterializePaths run them.
package filesystem
