package prompts

import (
	_ "embed"
	"strings"
	"text/template"
)

// System is the system message sent with every instruction.
const System = "Devuelve solo JSON válido."

//go:embed instruction.md
var instructionSource string

var instruction = template.Must(template.New("instruction").Parse(instructionSource))

// Field documents one filterable property for the model.
type Field struct {
	Name        string
	Description string
}

// BuildInstruction renders the user prompt: the field list, the two reply
// shapes and the normalization rules, followed by the instruction itself.
func BuildInstruction(fields []Field, text string) string {
	var b strings.Builder
	err := instruction.Execute(&b, struct {
		Fields      []Field
		Instruction string
	}{fields, text})
	if err != nil {
		// The template is fixed and only reads strings.
		panic("prompts: rendering instruction template: " + err.Error())
	}
	return strings.TrimSpace(b.String())
}
