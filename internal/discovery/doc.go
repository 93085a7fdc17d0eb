// Package discovery scans a project for Python packages that declare a
// __version__ marker and for manifest files (pyproject.toml, package.json,
// Chart.yaml, ...) that carry a copy of the version. Its results seed the
// init command and drive mismatch reporting.
package discovery
