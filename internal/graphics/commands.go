package graphics

import (
	"uigl/internal/graphics/glapi"
	"uigl/pkg/drawlist"
)

// ScissorRect is a scissor box in GL window coordinates (bottom-left origin).
type ScissorRect struct {
	X, Y, W, H int32
}

// ScissorFromClip converts a top-left-origin clip rect into the scissor box
// covering the same pixels in a viewport viewportHeight pixels tall.
// Coordinates are truncated toward zero.
func ScissorFromClip(clip drawlist.ClipRect, viewportHeight float32) ScissorRect {
	return ScissorRect{
		X: int32(clip.X0),
		Y: int32(viewportHeight - clip.Y1),
		W: int32(clip.X1 - clip.X0),
		H: int32(clip.Y1 - clip.Y0),
	}
}

// CommandExecutor turns draw commands into scissored indexed draw calls.
type CommandExecutor struct {
	api glapi.API
}

// NewCommandExecutor returns an executor issuing calls on api.
func NewCommandExecutor(api glapi.API) *CommandExecutor {
	return &CommandExecutor{api: api}
}

// Issue draws every command in order: one glScissor and one glDrawElements
// per command, each draw starting where the previous one's indices ended.
// Program, vertex array, texture and scissor test must already be set up.
// It returns the number of draw calls issued.
func (e *CommandExecutor) Issue(cmds []drawlist.Command, viewportHeight float32) int {
	api := e.api
	var offset uintptr
	for _, cmd := range cmds {
		s := ScissorFromClip(cmd.ClipRect, viewportHeight)
		api.Scissor(s.X, s.Y, s.W, s.H)
		api.DrawElements(glapi.TRIANGLES, int32(cmd.ElemCount), glapi.UNSIGNED_SHORT, offset)
		offset += uintptr(cmd.ElemCount) * uintptr(drawlist.IndexSize)
	}
	return len(cmds)
}
