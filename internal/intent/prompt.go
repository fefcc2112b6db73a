package intent

import (
	"github.com/sant0-9/divimap/internal/geo"
	"github.com/sant0-9/divimap/internal/prompts"
)

var promptFields = []prompts.Field{
	{Name: geo.FieldDeptCode, Description: "código DIVIPOLA del departamento (2 dígitos, ej. 05)"},
	{Name: geo.FieldMunCode, Description: "código del municipio dentro de su departamento (3 dígitos, ej. 001)"},
	{Name: geo.FieldDeptName, Description: "nombre del departamento (ej. ANTIOQUIA)"},
	{Name: geo.FieldMunName, Description: "nombre del municipio (ej. MEDELLÍN)"},
}

func buildPrompt(instruction string) string {
	return prompts.BuildInstruction(promptFields, instruction)
}
