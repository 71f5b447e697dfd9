package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

const modulePath = "github.com/cassiomorais/connector-service"

var fileTemplate = template.Must(template.New("prerequisites").Parse(`// Code generated by connectorgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)

// {{.Connector}}RouterData pairs the {{.Connector}} instance with the envelope of one flow.
type {{.Connector}}RouterData[RD any, {{.Generic}} paymentmethod.Holder[{{.Generic}}]] struct {
	Connector  *{{.Connector}}[{{.Generic}}]
	RouterData RD
}
{{range .Flows}}
{{- if .HasBody}}
// {{.Flow}}Input is the input {{.RequestName}} is built from.
{{- else}}
// {{.Flow}}Input is the input of the {{.Flow}} flow, which sends no body.
{{- end}}
type {{.Flow}}Input[{{$.Generic}} paymentmethod.Holder[{{$.Generic}}]] = {{.Input}}

// {{.Flow}}Bridge fixes the {{.Flow}} request and response bodies.
type {{.Flow}}Bridge[{{$.Generic}} paymentmethod.Holder[{{$.Generic}}]] = bridge.Bridge[
	{{.Input}},
	{{.Request}},
	{{.Response}},
	*{{.Request}},
]
{{end}}
// {{.Connector}} holds one bridge per declared flow.
type {{.Connector}}[{{.Generic}} paymentmethod.Holder[{{.Generic}}]] struct {
{{- range .Flows}}
	{{.Field}} bridge.RequestResponse[{{.Input}}, {{.Request}}, {{.Response}}]
{{- end}}
}

// New returns the process-wide {{.Connector}} instance for representation {{.Generic}}.
func New[{{.Generic}} paymentmethod.Holder[{{.Generic}}]]() *{{.Connector}}[{{.Generic}}] {
	return bridge.Instance(func() *{{.Connector}}[{{.Generic}}] {
		return &{{.Connector}}[{{.Generic}}]{
{{- range .Flows}}
			{{.Field}}: {{.Flow}}Bridge[{{$.Generic}}]{},
{{- end}}
		}
	})
}
`))

type fileData struct {
	Source    string
	Package   string
	Connector string
	Generic   string
	Imports   []string
	Flows     []flowData
}

type flowData struct {
	Flow        string
	Field       string
	Input       string
	Request     string
	RequestName string
	Response    string
	HasBody     bool
}

// Generate renders the gofmt-formatted prerequisites file for d. source is
// named in the generated header.
func Generate(d *Declaration, source string) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid declaration: %w", err)
	}

	data := fileData{
		Source:    source,
		Package:   d.Package,
		Connector: d.Connector,
		Generic:   d.Generic,
	}

	usesConnector := false
	for _, f := range d.Flows {
		input := fmt.Sprintf("%sRouterData[*%s, %s]", d.Connector, goType(f.RouterData), d.Generic)
		fd := flowData{
			Flow:     f.Flow,
			Field:    lowerFirst(f.Flow),
			Input:    input,
			Response: goType(f.ResponseBody),
			HasBody:  f.RequestBody != "",
		}
		if fd.HasBody {
			fd.Request = goType(f.RequestBody)
			fd.RequestName = baseName(f.RequestBody)
		} else {
			fd.Request = fmt.Sprintf("bridge.NoRequestBody[%s]", input)
		}
		for _, expr := range []string{fd.Input, fd.Request, fd.Response} {
			if strings.Contains(expr, "connector.") {
				usesConnector = true
			}
		}
		data.Flows = append(data.Flows, fd)
	}

	data.Imports = []string{modulePath + "/internal/connectors/bridge"}
	if usesConnector {
		data.Imports = append(data.Imports, modulePath+"/internal/domain/connector")
	}
	data.Imports = append(data.Imports, modulePath+"/internal/domain/paymentmethod")

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return out, nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
