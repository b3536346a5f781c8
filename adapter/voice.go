package adapter

import (
	"context"
	"os"
	"path/filepath"

	"reelforge/config"
	"reelforge/pkg/workspace"
)

type VoiceSynthesizer struct {
	interpreter string
	tool        string
	ws          *workspace.Workspace
}

func NewVoiceSynthesizer(cfg *config.Config, ws *workspace.Workspace) *VoiceSynthesizer {
	return &VoiceSynthesizer{
		interpreter: cfg.Tools.Interpreter,
		tool:        filepath.Join(cfg.Paths.Scripts, "make_voice.py"),
		ws:          ws,
	}
}

// Synthesize runs the voice tool and reports whether a separate hook audio
// track was produced alongside the main voice track.
func (v *VoiceSynthesizer) Synthesize(ctx context.Context) (bool, error) {
	if err := runTool(ctx, v.interpreter, v.tool); err != nil {
		return false, err
	}

	_, err := os.Stat(v.ws.HookVoice())
	return err == nil, nil
}
