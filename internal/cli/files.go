package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	formulaic "github.com/formulaic-app/formulaic-go"
)

func (a *CLI) filesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Formula file management",
	}

	cmd.AddCommand(a.fileListCommand())
	cmd.AddCommand(a.fileShowCommand())
	cmd.AddCommand(a.fileUploadCommand())
	cmd.AddCommand(a.fileUpdateCommand())
	cmd.AddCommand(a.fileDeleteCommand())

	return cmd
}

func (a *CLI) fileListCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "list [formula-id]",
		Short:         "List the files of a formula",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.client.GetFiles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), files)
		},
	}
}

func (a *CLI) fileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "show [formula-id] [file-id]",
		Short:         "Show a file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.client.GetFile(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), file)
		},
	}
}

// maxConcurrentUploads bounds the uploads in flight for a single command.
const maxConcurrentUploads = 4

func (a *CLI) fileUploadCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:           "upload [formula-id] [path...]",
		Short:         "Upload one or more files to a formula",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formulaID, paths := args[0], args[1:]
			if name != "" && len(paths) > 1 {
				return errors.New("--name cannot be used when uploading more than one file")
			}

			files := make([]formulaic.Resource, len(paths))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxConcurrentUploads)
			for i, path := range paths {
				g.Go(func() error {
					file, err := a.client.UploadFile(ctx, formulaID, formulaic.Path(path), name)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					files[i] = file
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if len(files) == 1 {
				return a.print(cmd.OutOrStdout(), files[0])
			}
			return a.print(cmd.OutOrStdout(), files)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the uploaded file; defaults to the base name of the path")

	return cmd
}

func (a *CLI) fileUpdateCommand() *cobra.Command {
	var data, dataFile string

	cmd := &cobra.Command{
		Use:           "update [formula-id] [file-id]",
		Short:         "Update a file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readData(data, dataFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if body == nil {
				return errors.New("file data is required: set --data or --data-file")
			}
			file, err := a.client.UpdateFile(cmd.Context(), args[0], args[1], body)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), file)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Changes as a JSON object")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "File containing the changes as a JSON object; - for stdin")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")

	return cmd
}

func (a *CLI) fileDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "delete [formula-id] [file-id]",
		Short:         "Delete a file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteFile(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted file %s\n", args[1])
			return nil
		},
	}
}
