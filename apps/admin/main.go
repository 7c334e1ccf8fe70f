package main

import (
	"log"
	"os"

	"github.com/raihan7913/devsecop-sub001/core"
	"github.com/raihan7913/devsecop-sub001/core/curriculum"
	logsvc "github.com/raihan7913/devsecop-sub001/services/logger"
	"github.com/raihan7913/devsecop-sub001/storage/database"
	sqlxrepos "github.com/raihan7913/devsecop-sub001/storage/database/sqlx"
	filestore "github.com/raihan7913/devsecop-sub001/storage/files"
)

func main() {
	conf := core.NewConfig()

	zl, err := logsvc.NewZapLogger(conf)
	if err != nil {
		log.Fatalf("setting up zap logger: %v", err)
	}
	logger := logsvc.NewRollbarLogger(zl.Named("ADMIN"), conf)
	logger.Enable(false)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}

	// start CLI
	repo := sqlxrepos.NewCurriculumRepository(db)
	cli := commandLine{
		conf: conf,
		db:   db,
		repo: repo,
		svc:  curriculum.NewService(repo, filestore.NewLocalStore(conf.Storage.Root), logger, conf.Storage.CurriculumDir),
		out:  os.Stdout,
	}
	err = cli.run(os.Args)

	_ = db.Close()
	_ = logger.Sync()
	if err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}
