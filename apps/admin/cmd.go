package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/volatiletech/null/v8"

	echoapi "github.com/raihan7913/devsecop-sub001/apps/api/echo"
	"github.com/raihan7913/devsecop-sub001/core"
	"github.com/raihan7913/devsecop-sub001/core/curriculum"
	"github.com/raihan7913/devsecop-sub001/core/workbook"
	sqlxrepos "github.com/raihan7913/devsecop-sub001/storage/database/sqlx"
)

var (
	readFileFunc  = ioutil.ReadFile  // mockable
	writeFileFunc = ioutil.WriteFile // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *core.Config
	db   *sqlx.DB
	repo *sqlxrepos.CurriculumRepository
	svc  *curriculum.Service
	out  io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Curriculum administration commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(
		cli.migrateCmd(),
		cli.subjectCmd(),
		cli.classCmd(),
		cli.tokenCmd(),
		cli.importCmd(),
		cli.templateCmd(),
	)
	return root
}

func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) < 2 {
		_ = root.Usage()
		return errHelp
	}
	root.SetArgs(args[1:])
	return root.ExecuteContext(context.Background())
}

func (cli *commandLine) subjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subject NAME",
		Short: "Create a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				_ = cmd.Usage()
				return errHelp
			}
			subj, err := cli.repo.CreateSubject(cmd.Context(), name)
			if err != nil {
				return err
			}
			cmd.Printf("subject %q created with id %d\n", subj.Name, subj.ID)
			return nil
		},
	}
}

func (cli *commandLine) classCmd() *cobra.Command {
	var year, semester string

	cmd := &cobra.Command{
		Use:   "class NAME",
		Short: "Create a class, optionally in a new active academic term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var termID null.Int64
			if year != "" {
				if semester == "" {
					return errors.New("--semester is required with --year")
				}
				id, err := cli.repo.CreateAcademicTerm(cmd.Context(), year, semester, true)
				if err != nil {
					return err
				}
				termID = null.Int64From(id)
			}
			class, err := cli.repo.CreateClass(cmd.Context(), strings.TrimSpace(args[0]), termID)
			if err != nil {
				return err
			}
			cmd.Printf("class %q created with id %d\n", class.Name, class.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&year, "year", "", "Academic term year, eg. 2024/2025")
	cmd.Flags().StringVar(&semester, "semester", "", "Academic term semester label (Ganjil|Genap)")
	return cmd
}

func (cli *commandLine) tokenCmd() *cobra.Command {
	var (
		username string
		subject  string
		roles    []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate an API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, role := range roles {
				if !isKnownRole(role) {
					return fmt.Errorf("unknown role %q (valid: %s)", role, strings.Join(echoapi.AllRoles, ", "))
				}
			}
			if subject == "" {
				subject = username
			}
			claims := echoapi.NewClaims(cli.conf, subject, username, roles...)
			token, err := echoapi.GenerateToken(cli.conf, claims)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Token username (required)")
	cmd.Flags().StringVar(&subject, "subject", "", "Token subject (default: username)")
	cmd.Flags().StringSliceVar(&roles, "role", []string{echoapi.RoleTeacher}, "Token roles")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func isKnownRole(role string) bool {
	for _, r := range echoapi.AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (cli *commandLine) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a curriculum document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFileFunc(args[0])
			if err != nil {
				return err
			}
			result, err := cli.svc.Import(cmd.Context(), data, args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

func (cli *commandLine) templateCmd() *cobra.Command {
	var (
		subject string
		phases  []string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty curriculum document for a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			var parsed []curriculum.Phase
			for _, p := range phases {
				phase, ok := curriculum.ParsePhase(p)
				if !ok {
					return fmt.Errorf("unknown phase %q", p)
				}
				parsed = append(parsed, phase)
			}
			if out == "" {
				out = core.Slugify(subject) + ".xlsx"
			}

			data, err := workbook.Encode(curriculum.NewTemplate(subject, parsed))
			if err != nil {
				return err
			}
			if err := writeFileFunc(out, data, 0644); err != nil {
				return err
			}
			cmd.Printf("template written to %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Subject name (required)")
	cmd.Flags().StringSliceVar(&phases, "phase", nil, "Phases to include (default: A,B,C)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: <subject>.xlsx)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
