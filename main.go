package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"estimator/collections"
	"estimator/handlers"
	"estimator/services"
	"estimator/store"
)

func newLibrary(app *pocketbase.PocketBase) *store.Library {
	return store.NewLibrary(
		store.NewRecordStore(app),
		store.NewSnapshotStore(app.DataDir()),
	)
}

func main() {
	app := pocketbase.New()

	// Create collections, seed data and upgrade legacy documents on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateLegacyEstimates(app); err != nil {
			log.Printf("Warning: legacy estimate migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		lib := newLibrary(app)

		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Estimate pages ───────────────────────────────────────
		se.Router.GET("/estimates", handlers.HandleEstimateList(lib))
		se.Router.POST("/estimates", handlers.HandleEstimateCreate(lib))
		se.Router.GET("/estimates/{id}", handlers.HandleEstimateView(lib))
		se.Router.POST("/estimates/{id}/duplicate", handlers.HandleEstimateDuplicate(lib))
		se.Router.DELETE("/estimates/{id}", handlers.HandleEstimateDelete(lib))

		// ── Import / export ──────────────────────────────────────
		se.Router.POST("/estimates/{id}/import", handlers.HandleEstimateImportCSV(lib))
		se.Router.GET("/estimates/{id}/export/csv", handlers.HandleEstimateExportCSV(lib))
		se.Router.GET("/estimates/{id}/export/xlsx", handlers.HandleEstimateExportExcel(lib))
		se.Router.GET("/estimates/{id}/export/pdf", handlers.HandleEstimateExportPDF(lib))

		// ── Document API (editor clients) ────────────────────────
		se.Router.GET("/api/estimates/{id}", handlers.HandleEstimateJSON(lib))
		se.Router.PATCH("/api/estimates/{id}", handlers.HandleEstimateUpdate(lib))

		se.Router.POST("/api/estimates/{id}/sections", handlers.HandleSectionAdd(lib))
		se.Router.POST("/api/estimates/{id}/sections/{sectionId}/duplicate", handlers.HandleSectionDuplicate(lib))
		se.Router.DELETE("/api/estimates/{id}/sections/{sectionId}", handlers.HandleSectionDelete(lib))

		se.Router.POST("/api/estimates/{id}/sections/{sectionId}/items", handlers.HandleItemAdd(lib))
		se.Router.PATCH("/api/estimates/{id}/sections/{sectionId}/items/{itemId}", handlers.HandleItemUpdate(lib))
		se.Router.DELETE("/api/estimates/{id}/sections/{sectionId}/items/{itemId}", handlers.HandleItemDelete(lib))

		// Redirect home to the estimates list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/estimates")
		})

		return se.Next()
	})

	app.RootCmd.AddCommand(newExportCmd(app))

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// newExportCmd adds an offline "export-csv" command so an estimate can be
// pulled straight out of the database without running the server.
func newExportCmd(app *pocketbase.PocketBase) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export-csv <estimate-id>",
		Short: "Export one estimate as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsBootstrapped() {
				if err := app.Bootstrap(); err != nil {
					return fmt.Errorf("bootstrap: %w", err)
				}
			}

			rs := store.NewRecordStore(app)
			p, err := rs.Load(args[0])
			if err != nil {
				return fmt.Errorf("load estimate %s: %w", args[0], err)
			}

			body := services.ExportCSV(p, services.CalcTotals(p))
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), body)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(body), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			log.Printf("export-csv: wrote %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the CSV to a file instead of stdout")
	return cmd
}
