package palette

import "strings"

// Level identifies where in the drill-down hierarchy a frame sits.
type Level int

const (
	LevelRoot Level = iota
	LevelWorkspace
	LevelProject
	LevelMember
	LevelTask
	LevelTeam
)

func (l Level) String() string {
	switch l {
	case LevelRoot:
		return "root"
	case LevelWorkspace:
		return "workspace"
	case LevelProject:
		return "project"
	case LevelMember:
		return "member"
	case LevelTask:
		return "task"
	case LevelTeam:
		return "team"
	default:
		return "unknown"
	}
}

// RootTitle is the breadcrumb label for the sentinel root frame.
const RootTitle = "Inicio"

// Frame is one entry in the drill-down history. Only the identifiers relevant
// to the frame's level are set; frames are treated as immutable once pushed.
type Frame struct {
	Level Level

	WorkspaceID   string
	WorkspaceName string

	ProjectID   string
	ProjectName string

	MemberID   string
	MemberName string

	TaskID    string
	TaskTitle string

	TeamID   string
	TeamName string

	// Title is the human-readable breadcrumb label for this frame.
	Title string
}

func RootFrame() Frame {
	return Frame{Level: LevelRoot, Title: RootTitle}
}

func WorkspaceFrame(id, name string) Frame {
	return Frame{Level: LevelWorkspace, WorkspaceID: id, WorkspaceName: name, Title: name}
}

// Stack is the navigation history. It always holds at least the root frame;
// the last frame is the current one.
type Stack struct {
	frames []Frame
}

func NewStack() *Stack {
	return &Stack{frames: []Frame{RootFrame()}}
}

func (s *Stack) Push(f Frame) {
	if strings.TrimSpace(f.Title) == "" {
		f.Title = f.Level.String()
	}
	s.frames = append(s.frames, f)
}

// Pop removes and returns the current frame. Popping the sole root frame is a
// no-op (ok is false).
func (s *Stack) Pop() (Frame, bool) {
	if len(s.frames) <= 1 {
		return Frame{}, false
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, true
}

// ResetToRoot replaces the whole stack with a single root frame.
func (s *Stack) ResetToRoot() {
	s.frames = []Frame{RootFrame()}
}

// ResetToFrame replaces the stack with [root, seed]. Used when the palette is
// opened while a workspace is already selected elsewhere in the app.
func (s *Stack) ResetToFrame(seed Frame) {
	s.frames = []Frame{RootFrame(), seed}
}

// JumpToIndex truncates the stack to length i+1 (breadcrumb click). Indexes
// out of range are clamped; jumping to the current frame is a no-op.
func (s *Stack) JumpToIndex(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(s.frames)-1 {
		return
	}
	s.frames = s.frames[:i+1]
}

func (s *Stack) Current() Frame {
	return s.frames[len(s.frames)-1]
}

func (s *Stack) Len() int { return len(s.frames) }

func (s *Stack) CanGoBack() bool { return len(s.frames) > 1 }

// At returns the frame at position i.
func (s *Stack) At(i int) (Frame, bool) {
	if i < 0 || i >= len(s.frames) {
		return Frame{}, false
	}
	return s.frames[i], true
}

// Breadcrumbs returns the frame titles, oldest first.
func (s *Stack) Breadcrumbs() []string {
	out := make([]string, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.Title
	}
	return out
}
