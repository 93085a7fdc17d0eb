package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/mail"
	"strings"

	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/parser"
	"github.com/indaco/pkgmeta/internal/pyver"
	"github.com/indaco/pkgmeta/internal/pyversion"
)

// ValidationResult is the outcome of one check.
type ValidationResult struct {
	// Category groups related checks (e.g. "Version", "Classifiers").
	Category string

	Passed  bool
	Message string

	// Warning marks a failed check that does not fail the run.
	Warning bool
}

// Validator checks a Config and the files it points to.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	version     string
	validations []ValidationResult
}

// NewValidator creates a Validator for cfg.
func NewValidator(fs core.FileSystem, cfg *Config) *Validator {
	return &Validator{fs: fs, cfg: cfg}
}

// Validate runs every check and returns the results in order.
func (v *Validator) Validate(ctx context.Context) []ValidationResult {
	v.validations = make([]ValidationResult, 0)
	v.version = ""

	v.validateRequiredFields()
	v.validateVersion(ctx)
	v.validateReadme(ctx)
	v.validateAuthorEmail()
	v.validateLicense()
	v.validatePythonClassifiers()
	v.validateSyncTargets(ctx)

	return v.validations
}

func (v *Validator) pass(category, message string) {
	v.validations = append(v.validations, ValidationResult{Category: category, Passed: true, Message: message})
}

func (v *Validator) fail(category, message string) {
	v.validations = append(v.validations, ValidationResult{Category: category, Message: message})
}

func (v *Validator) warn(category, message string) {
	v.validations = append(v.validations, ValidationResult{Category: category, Message: message, Warning: true})
}

func (v *Validator) validateRequiredFields() {
	missing := make([]string, 0, 2)
	if v.cfg.Name == "" {
		missing = append(missing, "name")
	}
	if v.cfg.Package == "" && v.cfg.VersionFile == "" {
		missing = append(missing, "package")
	}
	if len(missing) > 0 {
		v.fail("Required Fields", fmt.Sprintf("Missing required field(s): %s", strings.Join(missing, ", ")))
		return
	}
	v.pass("Required Fields", "name and package are set")
}

func (v *Validator) validateVersion(ctx context.Context) {
	path := v.cfg.VersionPath()
	raw, err := pyversion.ExtractFile(ctx, v.fs, path)
	if err != nil {
		v.fail("Version", err.Error())
		return
	}
	if _, err := pyver.Parse(raw); err != nil {
		v.fail("Version", fmt.Sprintf("Version %q in %s: %v", raw, path, err))
		return
	}
	v.version = raw
	v.pass("Version", fmt.Sprintf("Found version %s in %s", raw, path))
}

func (v *Validator) validateReadme(ctx context.Context) {
	path := v.cfg.ReadmePath()
	if _, err := v.fs.Stat(ctx, path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			v.fail("Readme", fmt.Sprintf("Readme %s does not exist", path))
		} else {
			v.fail("Readme", fmt.Sprintf("Failed to access readme %s: %v", path, err))
		}
		return
	}
	v.pass("Readme", fmt.Sprintf("Readme %s found", path))
}

func (v *Validator) validateAuthorEmail() {
	if v.cfg.AuthorEmail == "" {
		v.warn("Author", "author-email is not set")
		return
	}
	if _, err := mail.ParseAddress(v.cfg.AuthorEmail); err != nil {
		v.fail("Author", fmt.Sprintf("Invalid author-email %q", v.cfg.AuthorEmail))
		return
	}
	v.pass("Author", fmt.Sprintf("author-email %s is valid", v.cfg.AuthorEmail))
}

// licenseClassifierPrefix starts every OSI license classifier.
const licenseClassifierPrefix = "License :: "

func (v *Validator) validateLicense() {
	if v.cfg.License == "" {
		v.warn("License", "license is not set")
		return
	}

	var licenseClassifiers []string
	for _, c := range v.cfg.Classifiers {
		if strings.HasPrefix(c, licenseClassifierPrefix) {
			licenseClassifiers = append(licenseClassifiers, c)
		}
	}
	if len(licenseClassifiers) == 0 {
		v.warn("License", fmt.Sprintf("No license classifier for %q", v.cfg.License))
		return
	}
	for _, c := range licenseClassifiers {
		if strings.HasSuffix(c, ":: "+v.cfg.License) {
			v.pass("License", fmt.Sprintf("License %q matches classifier", v.cfg.License))
			return
		}
	}
	v.fail("License", fmt.Sprintf("License %q does not match classifier %q", v.cfg.License, licenseClassifiers[0]))
}

// pythonClassifierPrefix starts the runtime-version classifiers.
const pythonClassifierPrefix = "Programming Language :: Python :: "

// validatePythonClassifiers checks every "Programming Language :: Python :: X.Y"
// classifier against python-requires.
func (v *Validator) validatePythonClassifiers() {
	if v.cfg.PythonRequires == "" {
		v.warn("Python Requires", "python-requires is not set")
		return
	}
	spec, err := pyver.ParseSpecifier(v.cfg.PythonRequires)
	if err != nil {
		v.fail("Python Requires", err.Error())
		return
	}

	checked := 0
	for _, c := range v.cfg.Classifiers {
		rest, ok := strings.CutPrefix(c, pythonClassifierPrefix)
		if !ok {
			continue
		}
		ver, err := pyver.Parse(rest)
		if err != nil || len(ver.Segments) < 2 {
			// "Python :: 3" and "Python :: 3 :: Only" name a major line, not a release.
			continue
		}
		checked++
		if !spec.Match(ver) {
			v.fail("Python Requires", fmt.Sprintf("Classifier %q is outside python-requires %q", c, v.cfg.PythonRequires))
		}
	}

	if checked == 0 {
		v.warn("Python Requires", "No Python version classifiers to check")
		return
	}
	if !v.categoryFailed("Python Requires") {
		v.pass("Python Requires", fmt.Sprintf("%d Python classifier(s) satisfy %s", checked, spec))
	}
}

func (v *Validator) categoryFailed(category string) bool {
	for _, r := range v.validations {
		if r.Category == category && !r.Passed && !r.Warning {
			return true
		}
	}
	return false
}

func (v *Validator) validateSyncTargets(ctx context.Context) {
	if len(v.cfg.Sync) == 0 {
		return
	}
	reader := parser.NewReader(v.fs)
	for _, t := range v.cfg.Sync {
		res, err := reader.Read(ctx, t)
		if err != nil {
			v.fail("Sync", err.Error())
			continue
		}
		if v.version != "" && res.Version != v.version {
			v.warn("Sync", fmt.Sprintf("%s has version %s, expected %s (run 'pkgmeta sync')", t.Path, res.Version, v.version))
			continue
		}
		v.pass("Sync", fmt.Sprintf("%s is in sync", t.Path))
	}
}

// HasErrors reports whether any non-warning check failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed checks.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
