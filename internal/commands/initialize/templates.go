package initialize

import (
	"fmt"
	"slices"
	"strings"
)

// Template is a license preset: the license string plus its trove classifier.
type Template struct {
	Name        string
	Description string
	License     string
	Classifier  string
}

// AllTemplates returns all available templates.
func AllTemplates() []Template {
	return []Template{
		{
			Name:        "mit",
			Description: "MIT License",
			License:     "MIT License",
			Classifier:  "License :: OSI Approved :: MIT License",
		},
		{
			Name:        "apache",
			Description: "Apache License 2.0",
			License:     "Apache Software License",
			Classifier:  "License :: OSI Approved :: Apache Software License",
		},
		{
			Name:        "bsd",
			Description: "BSD 3-Clause License",
			License:     "BSD License",
			Classifier:  "License :: OSI Approved :: BSD License",
		},
		{
			Name:        "gpl",
			Description: "GNU General Public License v3",
			License:     "GNU General Public License v3 (GPLv3)",
			Classifier:  "License :: OSI Approved :: GNU General Public License v3 (GPLv3)",
		},
		{
			Name:        "proprietary",
			Description: "Closed source, all rights reserved",
			License:     "Other/Proprietary License",
			Classifier:  "License :: Other/Proprietary License",
		},
	}
}

// TemplateNames returns the names of all available templates.
func TemplateNames() []string {
	templates := AllTemplates()
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// GetTemplate returns the template with the given name, or an error if not found.
func GetTemplate(name string) (*Template, error) {
	for _, t := range AllTemplates() {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(TemplateNames(), ", "))
}

// IsValidTemplate checks if the given name is a valid template.
func IsValidTemplate(name string) bool {
	return slices.Contains(TemplateNames(), name)
}
