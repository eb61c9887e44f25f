package system

import (
	"context"
	"strings"
	"sync"
)

// MockExecutor implements CommandExecutor for testing.
//
// Responses are matched against the full command line ("name arg1 arg2 ...")
// by substring, in the order they were added. A rule with several responses
// hands them out in sequence and keeps repeating the last one.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	rules []*mockRule

	// DefaultResponse is used when no rule matches.
	DefaultResponse MockResponse
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
}

// Line returns the command as a single space separated string.
func (c MockCommand) Line() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Output []byte
	Err    error
}

type mockRule struct {
	match     string
	responses []MockResponse
	served    int
}

func (r *mockRule) next() MockResponse {
	i := r.served
	if i >= len(r.responses) {
		i = len(r.responses) - 1
	}
	r.served++
	return r.responses[i]
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands: make([]MockCommand, 0),
	}
}

// AddResponse adds a response for command lines containing match.
func (m *MockExecutor) AddResponse(match string, output []byte, err error) {
	m.AddSequence(match, MockResponse{Output: output, Err: err})
}

// AddSequence adds responses served one after another for command lines
// containing match.
func (m *MockExecutor) AddSequence(match string, responses ...MockResponse) {
	if len(responses) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, &mockRule{match: match, responses: responses})
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := MockCommand{Name: name, Args: append([]string(nil), args...)}
	m.Commands = append(m.Commands, cmd)

	line := cmd.Line()
	for _, rule := range m.rules {
		if strings.Contains(line, rule.match) {
			resp := rule.next()
			return resp.Output, resp.Err
		}
	}

	return m.DefaultResponse.Output, m.DefaultResponse.Err
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// CountMatching returns how many executed command lines contain match.
func (m *MockExecutor) CountMatching(match string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Commands {
		if strings.Contains(c.Line(), match) {
			n++
		}
	}
	return n
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]MockCommand, 0)
}
