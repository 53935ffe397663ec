package input

import (
	"fmt"
	"sort"
)

// Command is a keyboard action.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdResetView
	CmdPointSizeUp
	CmdPointSizeDown
	CmdPointColorCycle
	CmdPointColorDefault
	CmdPointColorColor
	CmdPointColorX
	CmdPointColorY
	CmdPointColorZ
	CmdMeshShadeCycle
	CmdToggleNormals
	CmdFieldOfViewUp
	CmdFieldOfViewDown
	CmdToggleLight
	CmdToggleBackground
	CmdToggleBoundingBox
	CmdScreenshot
	CmdSaveConfig
	CmdHelp
)

var commandNames = map[Command]string{
	CmdQuit:              "quit",
	CmdResetView:         "reset_view",
	CmdPointSizeUp:       "point_size_up",
	CmdPointSizeDown:     "point_size_down",
	CmdPointColorCycle:   "point_color_cycle",
	CmdPointColorDefault: "point_color_default",
	CmdPointColorColor:   "point_color_color",
	CmdPointColorX:       "point_color_x",
	CmdPointColorY:       "point_color_y",
	CmdPointColorZ:       "point_color_z",
	CmdMeshShadeCycle:    "mesh_shade_cycle",
	CmdToggleNormals:     "toggle_normals",
	CmdFieldOfViewUp:     "fov_up",
	CmdFieldOfViewDown:   "fov_down",
	CmdToggleLight:       "toggle_light",
	CmdToggleBackground:  "toggle_background",
	CmdToggleBoundingBox: "toggle_bbox",
	CmdScreenshot:        "screenshot",
	CmdSaveConfig:        "save_config",
	CmdHelp:              "help",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand resolves a config command name.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return CmdNone, fmt.Errorf("input: unknown command %q", name)
}

// Bindings maps key names to commands.
type Bindings map[string]Command

// ParseBindings builds a binding table from config key -> command names.
func ParseBindings(raw map[string]string) (Bindings, error) {
	b := make(Bindings, len(raw))
	for key, name := range raw {
		cmd, err := ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", key, err)
		}
		b[key] = cmd
	}
	return b, nil
}

// Keys returns the bound key names in sorted order.
func (b Bindings) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
