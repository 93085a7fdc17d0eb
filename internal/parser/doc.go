// Package parser reads and writes version strings in the files pkgmeta keeps
// in sync with the package version: Python init files, JSON, YAML and TOML
// manifests, raw version files and arbitrary files matched by a regex.
package parser
