package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain object",
			input: `{"tipo":"filtro","filtros":[]}`,
			want:  `{"tipo":"filtro","filtros":[]}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"tipo\":\"coordenada\",\"x\":-74.05,\"y\":4.65,\"epsg\":4326}\n```",
			want:  `{"tipo":"coordenada","x":-74.05,"y":4.65,"epsg":4326}`,
		},
		{
			name:  "upper-case fence tag",
			input: "```JSON {\"a\":1} ```",
			want:  `{"a":1}`,
		},
		{
			name:  "bare fence",
			input: "  ```\n{\"a\":1}\n```  ",
			want:  `{"a":1}`,
		},
		{
			name:  "single backticks",
			input: "`{\"a\":1}`",
			want:  `{"a":1}`,
		},
		{
			name:  "preamble and trailer",
			input: "Claro, aquí está: {\"a\":{\"b\":2}} ¡Saludos!",
			want:  `{"a":{"b":2}}`,
		},
		{
			name:  "greedy across objects",
			input: "primero {\"a\":1} luego {\"b\":2} fin",
			want:  `{"a":1} luego {"b":2}`,
		},
		{
			name:  "no json at all",
			input: "Lo siento, no puedo ayudar",
			want:  "Lo siento, no puedo ayudar",
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\":1}\n```",
		"`` ` texto",
		"``` ```json {\"a\":1} ``` ```",
		"prefijo ```json\n{\"a\":1}\n``` sufijo",
		"{sin cerrar",
		"}{",
		"",
		"```",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestCleanRecoversFencedJSONExactly(t *testing.T) {
	bodies := []string{
		`{"tipo":"filtro","filtros":[{"campo":"DEPTO","valor":"ANTIOQUIA"}]}`,
		"{\n  \"tipo\": \"coordenada\",\n  \"x\": -74.05,\n  \"y\": 4.65,\n  \"epsg\": 4326\n}",
	}
	for _, body := range bodies {
		assert.Equal(t, body, Clean("```json\n"+body+"\n```"))
		assert.Equal(t, body, Clean("```json "+body+" ```"))
	}
}
