package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

func main() {
	var dsn, out string
	flag.StringVar(&dsn, "dsn", os.Getenv("COLONYSIM_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/query", "output dir for generated query code; models land in the sibling model dir")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or COLONYSIM_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext | gen.WithDefaultQuery,
	})
	g.UseDB(db)
	g.ApplyBasic(
		g.GenerateModel("activity_events"),
		g.GenerateModel("activity_records"),
		g.GenerateModel("sim_clock_states"),
	)
	g.Execute()

	fmt.Printf("generated gorm models at %s\n", out)
}
