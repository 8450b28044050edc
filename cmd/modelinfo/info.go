package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Faultbox/pureparts/pkg/loader"
	pmath "github.com/Faultbox/pureparts/pkg/math"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Display geometry statistics for a model file",
		Long:  "Load a model and show its format, face and vertex counts, bounding box, size and center.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.loader().Load(args[0])
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

// printResult writes the statistics the viewer shows for a loaded model.
func printResult(w io.Writer, res *loader.Result) {
	fmt.Fprintf(w, "File:     %s\n", filepath.Base(res.Path))
	fmt.Fprintf(w, "Format:   %s\n", res.Format)
	if res.Format == loader.FormatModel {
		fmt.Fprintf(w, "Variant:  %s\n", res.Variant)
	}
	fmt.Fprintf(w, "Faces:    %d\n", res.Mesh.FaceCount)
	fmt.Fprintf(w, "Vertices: %d\n", res.Mesh.VertexCount)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min:    %s\n", formatVec(res.Bounds.Min))
	fmt.Fprintf(w, "  Max:    %s\n", formatVec(res.Bounds.Max))
	fmt.Fprintf(w, "  Center: %s\n", formatVec(res.Bounds.Center))
	fmt.Fprintf(w, "  Size:   %.4f\n", res.Bounds.Size)
	fmt.Fprintf(w, "  View distance: %.4f\n", res.ViewDistance())

	tr := res.Mesh.Truncation
	if tr.Truncated() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Truncated:")
		fmt.Fprintf(w, "  Vertex records: %d of %d\n", tr.ReadVertices, tr.ExpectedVertices)
		fmt.Fprintf(w, "  Indices:        %d of %d\n", tr.ReadIndices, tr.ExpectedIndices)
	}
	if len(res.Mesh.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range res.Mesh.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}

func formatVec(v pmath.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
