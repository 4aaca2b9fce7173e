package backend

import "fmt"

// ShaderStage identifies the stage a compile error came from.
type ShaderStage string

const (
	StageVertex   ShaderStage = "vertex"
	StageFragment ShaderStage = "fragment"
	StageLink     ShaderStage = "link"
)

// StageError is returned by Device.CompileProgram when a stage fails to compile or the program fails to link.
type StageError struct {
	Stage ShaderStage
	Log   string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %s", e.Stage, e.Log)
}
