package main

import (
	"context"
	"flag"
	"log"
	"net/http"
)

func main() {
	wordsPath := flag.String("words", "", "fichier texte contenant la liste de mots, un par ligne")
	gridPath := flag.String("grid", "", "fichier texte contenant la grille, une rangée par ligne")
	outPath := flag.String("out", "solution.txt", "fichier de sortie de la solution")
	check := flag.Bool("check", false, "compare deux fichiers solution passés en argument")
	flag.Parse()

	switch {
	case *check:
		runCheck(flag.Arg(0), flag.Arg(1))
	case *wordsPath != "" || *gridPath != "":
		runSolve(*wordsPath, *gridPath, *outPath)
	default:
		serve()
	}
}

// runSolve is the batch mode: solve a word list against a grid and
// write the report to a file.
func runSolve(wordsPath, gridPath, outPath string) {
	if wordsPath == "" || gridPath == "" {
		log.Fatal("les drapeaux -words et -grid vont ensemble")
	}

	words, err := loadLines(wordsPath)
	if err != nil {
		log.Fatalf("Liste de mots illisible : %v", err)
	}
	rows, err := loadLines(gridPath)
	if err != nil {
		log.Fatalf("Grille illisible : %v", err)
	}

	result := Solve(words, rows)

	if err := writeReportFile(outPath, result); err != nil {
		log.Fatalf("Écriture de la solution impossible : %v", err)
	}
	log.Printf("Solution écrite dans %s (%d mots, %d trouvés)", outPath, len(result), result.Matched())
}

// runCheck compares two solution files line by line.
func runCheck(pathA, pathB string) {
	if pathA == "" || pathB == "" {
		log.Fatal("usage : wordsearch -check solutionA.txt solutionB.txt")
	}

	same, err := sameContents(pathA, pathB)
	if err != nil {
		log.Fatalf("Comparaison impossible : %v", err)
	}
	if !same {
		log.Fatalf("Les fichiers %s et %s diffèrent", pathA, pathB)
	}
	log.Printf("Les fichiers %s et %s ont un contenu identique", pathA, pathB)
}

func serve() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Configuration invalide : %v", err)
	}

	ctx := context.Background()

	var gemini *GeminiClient
	if cfg.GCPProjectID != "" {
		gemini, err = NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPRegion)
		if err != nil {
			log.Fatalf("Impossible d'initialiser Gemini : %v", err)
		}
		defer gemini.Close()
		log.Printf("Client Gemini initialisé (projet: %s)", cfg.GCPProjectID)
	} else {
		log.Println("GCP_PROJECT_ID non défini — génération de grille désactivée")
	}

	srv := NewServer(NewStore(), gemini)

	log.Printf("Serveur démarré sur http://localhost:%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv); err != nil {
		log.Fatal(err)
	}
}
