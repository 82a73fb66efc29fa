// Package prompt 提供基于 bubbletea 的终端输入实现。
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/source"
)

// ErrCancelled 用户按下 ctrl+c / esc 取消输入。
var ErrCancelled = errors.New("prompt cancelled")

var (
	labelStyle    = lipgloss.NewStyle().Bold(true)
	optionalStyle = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// IsTerminal 报告 f 是否连接到终端。
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Terminal 在终端上逐条询问的 [source.Prompter]。
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal 创建终端提示器，nil 参数分别使用 os.Stdin / os.Stderr。
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}

	return &Terminal{in: in, out: out}
}

// Ask 实现 [source.Prompter]。
func (t *Terminal) Ask(ctx context.Context, q source.Question) (string, error) {
	final, err := t.run(ctx, newAskModel(q))
	if err != nil {
		return "", err
	}
	m := final.(askModel)
	if m.cancelled {
		return "", ErrCancelled
	}

	return m.input.Value(), nil
}

// Confirm 实现 [source.Prompter]，只接受 y / n。
func (t *Terminal) Confirm(ctx context.Context, text string) (bool, error) {
	final, err := t.run(ctx, confirmModel{text: text})
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}

	return m.answer, nil
}

func (t *Terminal) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, fmt.Errorf("run prompt: %w", err)
	}

	return final, nil
}

// askModel 单行输入。
type askModel struct {
	question  source.Question
	input     textinput.Model
	done      bool
	cancelled bool
}

func newAskModel(q source.Question) askModel {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 4096
	if q.Secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
	}
	input.Focus()

	return askModel{question: q, input: input}
}

func (m askModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m askModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	label := labelStyle.Render(m.question.Label)
	if m.question.Optional {
		label += " " + optionalStyle.Render("(optional, leave blank to skip)")
	}

	return label + "\n" + m.input.View() + "\n" + helpStyle.Render("enter confirm  esc cancel") + "\n"
}

// confirmModel y/n 确认，其它按键忽略。
type confirmModel struct {
	text      string
	answer    bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.answer, m.done = true, true
		return m, tea.Quit
	case "n", "N":
		m.answer, m.done = false, true
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	return labelStyle.Render(m.text) + " " + helpStyle.Render("(y/n)") + "\n"
}
