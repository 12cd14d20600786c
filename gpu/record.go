package gpu

import "fmt"

// Recorder is a Device that captures commands instead of touching a GPU.
//
// Tests use it to assert flush counts, blend-mode switch bounds and vertex
// stream determinism; headless tools use it to inspect what a frame would
// draw. Commands are typed structs rather than a serialized byte stream so
// failures read well in test output.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	commands []Command

	nextTarget  TargetID
	nextTexture TextureID

	targets  map[TargetID][2]int // live targets and their size
	textures map[TextureID][2]int

	released bool
}

// CommandType identifies the type of a recorded command.
type CommandType uint8

const (
	CmdCreateTarget CommandType = iota
	CmdResizeTarget
	CmdDestroyTarget
	CmdClearTarget
	CmdCreateTexture
	CmdUpdateTexture
	CmdDestroyTexture
	CmdSubmit
	CmdRunPass
	CmdRelease
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdCreateTarget:   "CreateTarget",
	CmdResizeTarget:   "ResizeTarget",
	CmdDestroyTarget:  "DestroyTarget",
	CmdClearTarget:    "ClearTarget",
	CmdCreateTexture:  "CreateTexture",
	CmdUpdateTexture:  "UpdateTexture",
	CmdDestroyTexture: "DestroyTexture",
	CmdSubmit:         "Submit",
	CmdRunPass:        "RunPass",
	CmdRelease:        "Release",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded device call.
type Command struct {
	Type  CommandType
	Label string

	Target  TargetID
	Texture TextureID
	W, H    int

	// Submit payload. Vertices is a copy; the caller's buffer is reused.
	Mode     DrawMode
	Blend    BlendMode
	Count    int
	Vertices []float32

	// RunPass payload.
	Pass     PassKind
	Inputs   []TargetID
	Uniforms []float32
}

// String returns a compact description, useful in test failures.
func (c Command) String() string {
	switch c.Type {
	case CmdSubmit:
		return fmt.Sprintf("Submit(%s/%s tex=%d n=%d)", c.Mode, c.Blend, c.Texture, c.Count)
	case CmdRunPass:
		return fmt.Sprintf("RunPass(%s -> %d)", c.Pass, c.Target)
	default:
		return c.Type.String()
	}
}

// NewRecorder creates an empty recording device.
func NewRecorder() *Recorder {
	return &Recorder{
		commands:    make([]Command, 0, 256),
		nextTarget:  1, // 0 is TargetScreen
		nextTexture: 1,
		targets:     make(map[TargetID][2]int),
		textures:    make(map[TextureID][2]int),
	}
}

// Commands returns every recorded command in call order.
func (r *Recorder) Commands() []Command { return r.commands }

// Reset discards recorded commands but keeps live resources, so one recorder
// can capture several frames in sequence.
func (r *Recorder) Reset() { r.commands = r.commands[:0] }

// Submissions returns only the vertex-batch submissions, in call order.
func (r *Recorder) Submissions() []Command {
	var out []Command
	for _, c := range r.commands {
		if c.Type == CmdSubmit {
			out = append(out, c)
		}
	}
	return out
}

// Passes returns only the post-processing passes, in call order.
func (r *Recorder) Passes() []Command {
	var out []Command
	for _, c := range r.commands {
		if c.Type == CmdRunPass {
			out = append(out, c)
		}
	}
	return out
}

// CreateTarget implements Device.
func (r *Recorder) CreateTarget(label string, w, h int, format TextureFormat) (TargetID, error) {
	if r.released {
		return 0, ErrDisposed
	}
	id := r.nextTarget
	r.nextTarget++
	r.targets[id] = [2]int{w, h}
	r.commands = append(r.commands, Command{Type: CmdCreateTarget, Label: label, Target: id, W: w, H: h})
	return id, nil
}

// ResizeTarget implements Device.
func (r *Recorder) ResizeTarget(id TargetID, w, h int) error {
	if r.released {
		return ErrDisposed
	}
	if _, ok := r.targets[id]; !ok {
		return ErrInvalidTarget
	}
	r.targets[id] = [2]int{w, h}
	r.commands = append(r.commands, Command{Type: CmdResizeTarget, Target: id, W: w, H: h})
	return nil
}

// DestroyTarget implements Device.
func (r *Recorder) DestroyTarget(id TargetID) {
	delete(r.targets, id)
	r.commands = append(r.commands, Command{Type: CmdDestroyTarget, Target: id})
}

// ClearTarget implements Device.
func (r *Recorder) ClearTarget(id TargetID, cr, cg, cb, ca float32) error {
	if r.released {
		return ErrDisposed
	}
	if id != TargetScreen {
		if _, ok := r.targets[id]; !ok {
			return ErrInvalidTarget
		}
	}
	r.commands = append(r.commands, Command{Type: CmdClearTarget, Target: id})
	return nil
}

// CreateTexture implements Device.
func (r *Recorder) CreateTexture(label string, w, h int, format TextureFormat, pixels []byte) (TextureID, error) {
	if r.released {
		return 0, ErrDisposed
	}
	id := r.nextTexture
	r.nextTexture++
	r.textures[id] = [2]int{w, h}
	r.commands = append(r.commands, Command{Type: CmdCreateTexture, Label: label, Texture: id, W: w, H: h})
	return id, nil
}

// UpdateTexture implements Device.
func (r *Recorder) UpdateTexture(id TextureID, x, y, w, h int, pixels []byte) error {
	if r.released {
		return ErrDisposed
	}
	if _, ok := r.textures[id]; !ok {
		return ErrInvalidTexture
	}
	r.commands = append(r.commands, Command{Type: CmdUpdateTexture, Texture: id, W: w, H: h})
	return nil
}

// DestroyTexture implements Device.
func (r *Recorder) DestroyTexture(id TextureID) {
	delete(r.textures, id)
	r.commands = append(r.commands, Command{Type: CmdDestroyTexture, Texture: id})
}

// Submit implements Device. The vertex slice is copied so the caller can
// reuse its buffer immediately.
func (r *Recorder) Submit(s *Submission) error {
	if r.released {
		return ErrDisposed
	}
	if s.Count == 0 {
		return ErrEmptySubmission
	}
	if s.Mode == ModeSprite {
		if _, ok := r.textures[s.Texture]; !ok {
			return ErrInvalidTexture
		}
	}
	verts := make([]float32, len(s.Vertices))
	copy(verts, s.Vertices)
	r.commands = append(r.commands, Command{
		Type:     CmdSubmit,
		Target:   s.Target,
		Mode:     s.Mode,
		Blend:    s.Blend,
		Texture:  s.Texture,
		Count:    s.Count,
		Vertices: verts,
	})
	return nil
}

// RunPass implements Device.
func (r *Recorder) RunPass(p *Pass) error {
	if r.released {
		return ErrDisposed
	}
	for _, in := range p.Inputs {
		if in == TargetScreen {
			continue
		}
		if _, ok := r.targets[in]; !ok {
			return ErrInvalidTarget
		}
	}
	uniforms := make([]float32, len(p.Uniforms))
	copy(uniforms, p.Uniforms)
	inputs := make([]TargetID, len(p.Inputs))
	copy(inputs, p.Inputs)
	r.commands = append(r.commands, Command{
		Type:     CmdRunPass,
		Pass:     p.Kind,
		Target:   p.Output,
		Inputs:   inputs,
		Uniforms: uniforms,
	})
	return nil
}

// Release implements Device.
func (r *Recorder) Release() {
	if r.released {
		return
	}
	r.released = true
	r.targets = nil
	r.textures = nil
	r.commands = append(r.commands, Command{Type: CmdRelease})
}
