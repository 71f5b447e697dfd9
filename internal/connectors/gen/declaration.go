// Package gen renders the per-connector prerequisites file from a YAML flow
// declaration.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Declaration lists the flows a connector implements and the body types each
// flow converts through.
type Declaration struct {
	Connector string            `yaml:"connector"`
	Package   string            `yaml:"package"`
	Generic   string            `yaml:"generic"`
	Flows     []FlowDeclaration `yaml:"flows"`
}

// FlowDeclaration binds one flow to its envelope and bodies. Generic
// arguments may be written Name<T> or Name[T]. An empty RequestBody means
// the flow sends no body.
type FlowDeclaration struct {
	Flow         string `yaml:"flow"`
	RouterData   string `yaml:"router_data"`
	RequestBody  string `yaml:"request_body,omitempty"`
	ResponseBody string `yaml:"response_body"`
}

var (
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	typePattern  = regexp.MustCompile(`^\*?[A-Za-z_][A-Za-z0-9_.]*([\[<][A-Za-z0-9_.,\[\]<>* ]*[\]>])?$`)
)

// LoadDeclaration reads and validates a declaration file.
func LoadDeclaration(path string) (*Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read declaration: %w", err)
	}
	return ParseDeclaration(data)
}

// ParseDeclaration decodes data, rejecting unknown keys, and validates it.
func ParseDeclaration(data []byte) (*Declaration, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Declaration
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode declaration: %w", err)
	}
	if d.Generic == "" {
		d.Generic = "T"
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid declaration: %w", err)
	}
	return &d, nil
}

func (d *Declaration) Validate() error {
	var errs []error

	if !identPattern.MatchString(d.Connector) {
		errs = append(errs, fmt.Errorf("connector must be a Go identifier, got %q", d.Connector))
	}
	if !identPattern.MatchString(d.Package) || strings.ToLower(d.Package) != d.Package {
		errs = append(errs, fmt.Errorf("package must be a lower-case Go identifier, got %q", d.Package))
	}
	if !identPattern.MatchString(d.Generic) {
		errs = append(errs, fmt.Errorf("generic must be a Go identifier, got %q", d.Generic))
	}
	if len(d.Flows) == 0 {
		errs = append(errs, errors.New("at least one flow is required"))
	}

	seen := make(map[string]bool, len(d.Flows))
	for i, f := range d.Flows {
		at := fmt.Sprintf("flows[%d]", i)
		if !identPattern.MatchString(f.Flow) {
			errs = append(errs, fmt.Errorf("%s.flow must be a Go identifier, got %q", at, f.Flow))
		} else if seen[f.Flow] {
			errs = append(errs, fmt.Errorf("%s.flow %s declared twice", at, f.Flow))
		}
		seen[f.Flow] = true

		if f.RouterData == "" {
			errs = append(errs, fmt.Errorf("%s.router_data is required", at))
		} else if !typePattern.MatchString(f.RouterData) {
			errs = append(errs, fmt.Errorf("%s.router_data is not a type expression: %q", at, f.RouterData))
		}
		if f.ResponseBody == "" {
			errs = append(errs, fmt.Errorf("%s.response_body is required", at))
		} else if !typePattern.MatchString(f.ResponseBody) {
			errs = append(errs, fmt.Errorf("%s.response_body is not a type expression: %q", at, f.ResponseBody))
		}
		if f.RequestBody != "" && !typePattern.MatchString(f.RequestBody) {
			errs = append(errs, fmt.Errorf("%s.request_body is not a type expression: %q", at, f.RequestBody))
		}
	}

	return errors.Join(errs...)
}

// goType rewrites Name<T> as Name[T].
func goType(expr string) string {
	return strings.NewReplacer("<", "[", ">", "]").Replace(strings.TrimSpace(expr))
}

// baseName is expr without pointer or type arguments.
func baseName(expr string) string {
	expr = strings.TrimPrefix(goType(expr), "*")
	if i := strings.IndexByte(expr, '['); i >= 0 {
		return expr[:i]
	}
	return expr
}
