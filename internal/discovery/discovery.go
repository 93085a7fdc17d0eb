package discovery

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/parser"
	"github.com/indaco/pkgmeta/internal/pyver"
	"github.com/indaco/pkgmeta/internal/pyversion"
)

// DefaultManifestDepth is how many directory levels below the root are
// scanned for manifests.
const DefaultManifestDepth = 2

var skipDirs = []string{"node_modules", "vendor", "__pycache__", "build", "dist", "venv", "site-packages"}

// Service provides version source discovery functionality.
type Service struct {
	fs       core.FileSystem
	reader   *parser.Reader
	maxDepth int
}

// NewService creates a new discovery Service.
func NewService(fs core.FileSystem) *Service {
	return &Service{
		fs:       fs,
		reader:   parser.NewReader(fs),
		maxDepth: DefaultManifestDepth,
	}
}

// Discover scans root and returns discovery results.
func (s *Service) Discover(ctx context.Context, root string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Packages:   make([]Package, 0),
		Manifests:  make([]ManifestSource, 0),
		Mismatches: make([]Mismatch, 0),
	}

	// flat layout first, then src layout
	for _, base := range []string{root, filepath.Join(root, "src")} {
		pkgs, err := s.discoverPackages(ctx, root, base)
		if err != nil {
			return nil, err
		}
		result.Packages = append(result.Packages, pkgs...)
	}

	manifests, err := s.discoverManifests(ctx, root)
	if err != nil {
		return nil, err
	}
	result.Manifests = manifests

	slog.Debug("discovery finished", "root", root, "packages", len(result.Packages), "manifests", len(result.Manifests))
	if primary := result.Primary(); primary != nil {
		result.Mismatches = DetectMismatches(primary.Version, result.Manifests)
	}
	return result, nil
}

// discoverPackages lists the direct subdirectories of base holding a
// versioned __init__.py.
func (s *Service) discoverPackages(ctx context.Context, root, base string) ([]Package, error) {
	entries, err := s.fs.ReadDir(ctx, base)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// Missing or unreadable directories hold no packages.
		return nil, nil
	}

	var pkgs []Package
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || shouldExclude(name) {
			continue
		}
		initPath := filepath.Join(base, name, "__init__.py")
		version, err := pyversion.ExtractFile(ctx, s.fs, initPath)
		if err != nil {
			continue
		}
		pkgs = append(pkgs, Package{
			Name:        name,
			VersionFile: relTo(root, initPath),
			Version:     version,
		})
	}
	return pkgs, nil
}

// discoverManifests walks root up to maxDepth levels looking for known
// manifest files with a parseable version.
func (s *Service) discoverManifests(ctx context.Context, root string) ([]ManifestSource, error) {
	var manifests []ManifestSource

	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		if depth > s.maxDepth {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := s.fs.ReadDir(ctx, dir)
		if err != nil {
			return nil
		}

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
		for _, known := range DefaultKnownManifests() {
			if !slices.Contains(names, known.Filename) {
				continue
			}
			path := filepath.Join(dir, known.Filename)
			version, err := s.reader.ReadVersion(ctx, parser.Target{
				Path:   path,
				Format: known.Format,
				Field:  known.Field,
			})
			if err != nil {
				continue
			}
			if _, err := pyver.Parse(version); err != nil {
				continue
			}
			manifests = append(manifests, ManifestSource{
				RelPath:     relTo(root, path),
				Version:     version,
				Format:      known.Format,
				Field:       known.Field,
				Description: known.Description,
			})
		}

		for _, entry := range entries {
			if !entry.IsDir() || shouldExclude(entry.Name()) {
				continue
			}
			if err := walk(filepath.Join(dir, entry.Name()), depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root, 0); err != nil {
		return nil, err
	}
	return manifests, nil
}

// DetectMismatches returns the manifests whose version differs from expected,
// sorted by path.
func DetectMismatches(expected string, manifests []ManifestSource) []Mismatch {
	mismatches := make([]Mismatch, 0)
	if expected == "" {
		return mismatches
	}
	for _, m := range manifests {
		if m.Version != expected {
			mismatches = append(mismatches, Mismatch{
				Source:          m.RelPath,
				ExpectedVersion: expected,
				ActualVersion:   m.Version,
			})
		}
	}
	slices.SortFunc(mismatches, func(a, b Mismatch) int {
		return strings.Compare(a.Source, b.Source)
	})
	return mismatches
}

func shouldExclude(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".egg-info") {
		return true
	}
	return slices.Contains(skipDirs, name)
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
