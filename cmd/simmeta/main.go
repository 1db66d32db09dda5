package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/ukncsp/simmeta"
	"github.com/ukncsp/simmeta/pkg/issueform"
	"github.com/ukncsp/simmeta/pkg/schema"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

type engineFlags struct {
	configPath string
	corpusDir  string
}

func (f engineFlags) engine() (*simmeta.Engine, error) {
	var opts []simmeta.Option
	if f.configPath != "" {
		opts = append(opts, simmeta.WithConfigFile(f.configPath))
	}
	if f.corpusDir != "" {
		opts = append(opts, simmeta.WithCorpusDir(f.corpusDir))
	}
	return simmeta.New(opts...)
}

func main() {
	root := &cobra.Command{
		Use:           "simmeta",
		Short:         "Validate and persist simulation workflow metadata",
		Long:          "simmeta turns issue-form submissions into canonical workflow metadata records and re-validates the persisted corpus.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var flags engineFlags
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Engine settings file (default simmeta.yaml when present)")
	root.PersistentFlags().StringVar(&flags.corpusDir, "corpus", "", "Corpus directory override")

	root.AddCommand(newSubmitCmd(&flags))
	root.AddCommand(newAuditCmd(&flags))
	root.AddCommand(newNewCmd(&flags))

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, ee.msg)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSubmitCmd(flags *engineFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "submit [body-file]",
		Short: "Validate a form body and persist it on success",
		Long:  "Reads the issue-form body from the given file, or from the ISSUE_BODY environment variable when no file is named, and runs the submission path. The rendered feedback comment goes to stdout; a rejected submission exits 1.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(args)
			if err != nil {
				return err
			}

			engine, err := flags.engine()
			if err != nil {
				return err
			}
			result, err := engine.Submit(body)
			if err != nil {
				if errors.Is(err, issueform.ErrNoFields) {
					return codeError(1, "could not parse issue body: %v", err)
				}
				return err
			}

			cmd.Print(result.Feedback)
			if !result.Accepted {
				return codeError(1, "")
			}
			cmd.Printf("Saved metadata file as %s\n", result.Path)
			return nil
		},
	}
}

func newAuditCmd(flags *engineFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Re-validate every persisted record",
		Long:  "Runs the full rule set over the persisted corpus and prints the failure report. Exits 1 when any record no longer validates.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := flags.engine()
			if err != nil {
				return err
			}
			result, err := engine.Audit()
			if err != nil {
				return err
			}
			cmd.Print(result.Report)
			if len(result.Findings) > 0 {
				return codeError(1, "")
			}
			return nil
		},
	}
}

func newNewCmd(flags *engineFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Interactively author a submission body",
		Long:  "Prompts for every declared field and writes the issue-form rendering of the answers, so the submission path can be exercised without the form UI.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := promptFields()
			if err != nil {
				return err
			}
			body := issueform.Compose(values)

			if output != "" {
				if err := os.WriteFile(output, []byte(body), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				cmd.Printf("Body written to %s\n", output)
				return nil
			}
			cmd.Print(body)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "Write the body to a file instead of stdout")
	return cmd
}

func promptFields() (map[string]string, error) {
	values := make(map[string]string, len(schema.Names()))
	for _, spec := range schema.Fields() {
		label := issueform.DisplayLabel(spec.Name)

		var prompt survey.Prompt
		if spec.Format == schema.FormatEnum {
			options := spec.Enum
			if spec.Requirement != schema.Required {
				options = append([]string{""}, options...)
			}
			prompt = &survey.Select{Message: label, Options: options}
		} else {
			prompt = &survey.Input{Message: label}
		}

		var answer string
		var opts []survey.AskOpt
		if spec.Requirement == schema.Required {
			opts = append(opts, survey.WithValidator(survey.Required))
		}
		if err := survey.AskOne(prompt, &answer, opts...); err != nil {
			return nil, fmt.Errorf("prompt %s: %w", spec.Name, err)
		}
		values[spec.Name] = answer
	}
	return values, nil
}

func readBody(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read body file: %w", err)
		}
		return string(data), nil
	}
	if body, ok := os.LookupEnv("ISSUE_BODY"); ok && body != "" {
		return body, nil
	}
	return "", errors.New("no body file given and ISSUE_BODY is not set")
}
