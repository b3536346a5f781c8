package adapter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"reelforge/config"
	"reelforge/pkg/workspace"
)

// scriptTimeout bounds script generation, the one stage with an explicit
// deadline. The other tools rely on their own completion.
const scriptTimeout = 600 * time.Second

// ScriptByProducts are the structured extras the script tool may emit for
// UI display. All fields are optional.
type ScriptByProducts struct {
	SelectedHook string   `json:"selected_hook"`
	HookOptions  []string `json:"hook_options"`
	Timeline     []string `json:"render_timeline"`
}

type ScriptGenerator struct {
	interpreter string
	tool        string
	ws          *workspace.Workspace
}

func NewScriptGenerator(cfg *config.Config, ws *workspace.Workspace) *ScriptGenerator {
	return &ScriptGenerator{
		interpreter: cfg.Tools.Interpreter,
		tool:        filepath.Join(cfg.Paths.Scripts, "make_script.py"),
		ws:          ws,
	}
}

// Generate invokes the script tool with the topic. By-products are read
// opportunistically: a missing or malformed struct file is not an error.
func (g *ScriptGenerator) Generate(ctx context.Context, topic string) (ScriptByProducts, error) {
	ctx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()

	if err := runTool(ctx, g.interpreter, g.tool, topic); err != nil {
		return ScriptByProducts{}, err
	}

	return g.readByProducts(ctx), nil
}

func (g *ScriptGenerator) readByProducts(ctx context.Context) ScriptByProducts {
	var bp ScriptByProducts
	data, err := os.ReadFile(g.ws.ScriptStruct())
	if err != nil {
		return bp
	}
	if err := json.Unmarshal(data, &bp); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to parse script struct")
		return ScriptByProducts{}
	}
	return bp
}
