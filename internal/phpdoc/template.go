package phpdoc

import (
	"bytes"
	"encoding/xml"
	"text/template"
)

// TemplateData fills the phpdoc.xml skeleton. Paths are written as given;
// phpDocumentor resolves relative ones against the config file's directory.
type TemplateData struct {
	Title  string
	Source string
	Output string
	Cache  string
}

var configTemplate = template.Must(template.New("phpdoc.xml").Funcs(template.FuncMap{
	"xml": xmlEscape,
}).Parse(configTemplateSource))

func xmlEscape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

const configTemplateSource = `<?xml version="1.0" encoding="UTF-8" ?>
<phpdocumentor
        configVersion="3"
        xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
        xmlns="https://www.phpdoc.org"
        xsi:noNamespaceSchemaLocation="https://docs.phpdoc.org/latest/phpdoc.xsd"
>
    <title>{{ xml .Title }}</title>
    <paths>
        <output>{{ xml .Output }}</output>
        <cache>{{ xml .Cache }}</cache>
    </paths>
    <version number="latest">
        <api>
            <source dsn=".">
                <path>{{ xml .Source }}</path>
            </source>
        </api>
    </version>
</phpdocumentor>
`
