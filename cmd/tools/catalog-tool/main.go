// cmd/tools/catalog-tool/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"readiness-workers/internal/catalog"
	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/database"
	"readiness-workers/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	seedPostgresCmd := flag.NewFlagSet("seed-postgres", flag.ExitOnError)
	seedESCmd := flag.NewFlagSet("seed-elasticsearch", flag.ExitOnError)

	validatePath := validateCmd.String("path", "configs/catalog.json", "Path to catalog file")
	exportOut := exportCmd.String("out", "configs/catalog.json", "Where to write the builtin catalog")
	seedPostgresPath := seedPostgresCmd.String("path", "", "Catalog file to seed (builtin catalog if empty)")
	seedESPath := seedESCmd.String("path", "", "Catalog file to seed (builtin catalog if empty)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		err = validate(*validatePath)

	case "export":
		exportCmd.Parse(os.Args[2:])
		err = export(*exportOut)

	case "seed-postgres":
		seedPostgresCmd.Parse(os.Args[2:])
		err = seedPostgres(*seedPostgresPath)

	case "seed-elasticsearch":
		seedESCmd.Parse(os.Args[2:])
		err = seedElasticsearch(*seedESPath)

	default:
		help()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func help() {
	fmt.Println("Usage: catalog-tool <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  validate            -path <file>   Validate a catalog document")
	fmt.Println("  export              -out <file>    Write the builtin catalog to a file")
	fmt.Println("  seed-postgres       [-path <file>] Upsert a catalog into Postgres")
	fmt.Println("  seed-elasticsearch  [-path <file>] Index a catalog into Elasticsearch")
}

func validate(path string) error {
	doc, err := registry.LoadDocument(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Printf("Catalog %s is valid (version %s, %d courses, %d opportunities)\n",
		path, doc.Version, len(doc.Courses), len(doc.Opportunities))
	return nil
}

func export(out string) error {
	doc, err := catalog.BuiltinDocument()
	if err != nil {
		return err
	}
	if err := registry.SaveDocument(doc, out); err != nil {
		return err
	}
	fmt.Printf("Builtin catalog written to %s\n", out)
	return nil
}

func loadDocument(path string) (*registry.Document, error) {
	if path == "" {
		return catalog.BuiltinDocument()
	}
	return registry.LoadDocument(path)
}

func seedPostgres(path string) error {
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := catalog.NewPostgresSource(pg.DB).Seed(ctx, doc); err != nil {
		return err
	}
	fmt.Printf("Seeded %d courses and %d opportunities into Postgres\n", len(doc.Courses), len(doc.Opportunities))
	return nil
}

func seedElasticsearch(path string) error {
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	source := catalog.NewElasticsearchSource(es.Client, cfg.Catalog.CourseIndex, cfg.Catalog.OpportunityIndex)
	if err := source.Seed(ctx, doc); err != nil {
		return err
	}
	fmt.Printf("Indexed %d courses and %d opportunities into Elasticsearch\n", len(doc.Courses), len(doc.Opportunities))
	return nil
}
