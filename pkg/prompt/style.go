package prompt

import (
	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

type characterModule struct {
	SuccessSymbol string `toml:"success_symbol"`
	ErrorSymbol   string `toml:"error_symbol"`
}

type directoryModule struct {
	TruncationLength int  `toml:"truncation_length"`
	TruncateToRepo   bool `toml:"truncate_to_repo"`
}

type gitBranchModule struct {
	Symbol string `toml:"symbol"`
}

type cmdDurationModule struct {
	MinTime int    `toml:"min_time"`
	Format  string `toml:"format"`
}

// style is the subset of the prompt tool's configuration zshkit seeds.
type style struct {
	AddNewline  bool              `toml:"add_newline"`
	Character   characterModule   `toml:"character"`
	Directory   directoryModule   `toml:"directory"`
	GitBranch   gitBranchModule   `toml:"git_branch"`
	CmdDuration cmdDurationModule `toml:"cmd_duration"`
}

const styleHeader = "# Written by zshkit. It is never overwritten, edit freely.\n\n"

func defaultStyle() style {
	return style{
		AddNewline: true,
		Character: characterModule{
			SuccessSymbol: "[❯](bold green)",
			ErrorSymbol:   "[❯](bold red)",
		},
		Directory: directoryModule{
			TruncationLength: 3,
			TruncateToRepo:   true,
		},
		GitBranch: gitBranchModule{
			Symbol: "⎇ ",
		},
		CmdDuration: cmdDurationModule{
			MinTime: 2000,
			Format:  "took [$duration]($style) ",
		},
	}
}

// DefaultStyle renders the starter style file.
func DefaultStyle() ([]byte, error) {
	body, err := toml.Marshal(defaultStyle())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot render default prompt style")
	}
	return append([]byte(styleHeader), body...), nil
}
