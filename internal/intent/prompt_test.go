package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptDescribesFieldCodes(t *testing.T) {
	prompt := buildPrompt("municipio 001 del departamento 05")

	assert.Contains(t, prompt, "\n- DPTO_CCDGO: código DIVIPOLA del departamento (2 dígitos, ej. 05)\n")
	assert.Contains(t, prompt, "\n- MPIO_CCDGO: código del municipio dentro de su departamento (3 dígitos, ej. 001)\n")
	assert.NotContains(t, prompt, "5 dígitos")
	assert.Contains(t, prompt, "La combinación DPTO_CCDGO + MPIO_CCDGO identifica un municipio único.")
	assert.Contains(t, prompt, "filtra por DPTO_CCDGO y MPIO_CCDGO a la vez")
}
