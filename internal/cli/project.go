package cli

import (
	"os"

	"github.com/scopeline-dev/scopeline/internal/config"
	"github.com/scopeline-dev/scopeline/internal/issue"
	"github.com/scopeline-dev/scopeline/internal/languages"
	"github.com/scopeline-dev/scopeline/internal/pathindex"
	"github.com/scopeline-dev/scopeline/internal/prompt"
	"github.com/scopeline-dev/scopeline/internal/scope"
)

// Project is the context every command runs against: the working directory,
// an immutable config snapshot, and the stores constructed from it. It is
// built once per invocation and passed explicitly.
type Project struct {
	Root     string
	Config   config.Config
	IssueDir string
	Store    *issue.Store
	Index    *pathindex.Index
	Registry *scope.Registry
	Prompter prompt.Prompter
}

// LoadProject builds the command context from the current working directory.
func LoadProject() (*Project, error) {
	root, err := resolveWorkingDirectory()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	issueDir := cfg.ResolveIssueDir(root)
	return &Project{
		Root:     root,
		Config:   cfg,
		IssueDir: issueDir,
		Store:    issue.NewStore(issueDir),
		Index:    pathindex.New(issueDir, cfg.KeyLength),
		Registry: languages.NewDefaultRegistry(),
		Prompter: prompt.NewTerminal(),
	}, nil
}

func resolveWorkingDirectory() (string, error) {
	return os.Getwd()
}
