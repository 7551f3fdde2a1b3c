package output

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"stylemod/config"
	"stylemod/css"
	"stylemod/state"
)

func setupTestEnv(t *testing.T, noDirs, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Extract.FileNameTransliterate = transliterate
	cfg.Extract.OutputNameTemplate = template

	return &state.LocalEnv{
		Log:    logger,
		Cfg:    cfg,
		NoDirs: noDirs,
		RunID:  uuid.Must(uuid.NewV7()),
	}
}

func width(v float64) *float64 {
	return &v
}

func testSource(name string) *Source {
	return &Source{
		Name:    name,
		Kind:    "css",
		Charset: "utf-8",
		Declarations: []css.ParsedStyleDecl{
			{Property: "color", Value: css.RGBValue{R: 255, Alpha: 1}, Selector: ".title"},
			{Property: "marginTop", Value: css.UnitValue{Value: 10, Unit: "px"}, Selector: "p", State: ":hover"},
			{
				Property: "display", Value: css.KeywordValue{Value: "none"}, Selector: ".menu",
				Breakpoint: &css.Breakpoint{MinWidth: width(768)},
			},
			{Property: "width", Value: css.InvalidValue{Value: "red"}, Selector: ".box"},
		},
	}
}
