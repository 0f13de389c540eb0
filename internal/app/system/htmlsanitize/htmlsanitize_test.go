package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/doctajus/lexhub/internal/app/system/htmlsanitize"
)

func TestSanitize_PlainText(t *testing.T) {
	result := htmlsanitize.Sanitize("Demanda laboral 2025")
	if result != "Demanda laboral 2025" {
		t.Errorf("expected plain text unchanged, got %q", result)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hola</p><script>alert('xss')</script>"
	result := htmlsanitize.Sanitize(input)
	if result != "<p>Hola</p>" {
		t.Errorf("expected script removed, got %q", result)
	}
}

func TestSanitize_KeepsFormatting(t *testing.T) {
	input := "<p><strong>Resumen</strong> del <em>expediente</em></p>"
	result := htmlsanitize.Sanitize(input)
	if result != input {
		t.Errorf("expected formatting preserved, got %q", result)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<b onclick="alert('xss')">Negrita</b>`
	result := htmlsanitize.Sanitize(input)
	if strings.Contains(result, "onclick") {
		t.Errorf("expected onclick removed, got %q", result)
	}
}

func TestStrip_RemovesAllTags(t *testing.T) {
	result := htmlsanitize.Strip("<h1>Contrato</h1> de <i>locación</i>")
	if result != "Contrato de locación" {
		t.Errorf("expected bare text, got %q", result)
	}
}

func TestStrip_DecodesEntities(t *testing.T) {
	result := htmlsanitize.Strip("Pérez & Asociados")
	if result != "Pérez & Asociados" {
		t.Errorf("expected literal ampersand, got %q", result)
	}
}

func TestStrip_Empty(t *testing.T) {
	if got := htmlsanitize.Strip(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestStrip_TrimsWhitespace(t *testing.T) {
	if got := htmlsanitize.Strip("  escrito  "); got != "escrito" {
		t.Errorf("expected trimmed text, got %q", got)
	}
}
