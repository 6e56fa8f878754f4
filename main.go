//go:build !(js && wasm)

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/voxelsplace/voxedit/utils"
)

func usage() {
	fmt.Println("Usage: voxedit <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  session script.yaml output.json [config.yaml]  (play a pointer script against a fresh scene)")
	fmt.Println("  records2glb input.json output.glb              (convert clipboard JSON -> .glb using greedy mesh)")
	fmt.Println("  digest input.json                              (print the scene digest and import report)")
	fmt.Println("  genscene <count> <seed> output.json            (grow a random connected scene)")
	fmt.Println("  journal edits.jsonl.zst                        (dump an edit journal)")
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	logger := log.New(os.Stderr, "[voxedit] ", log.LstdFlags|log.Lmicroseconds)

	switch os.Args[1] {
	case "session":
		if len(os.Args) != 4 && len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		cfg := ""
		if len(os.Args) == 5 {
			cfg = os.Args[4]
		}
		if err := utils.RunSession(os.Args[2], os.Args[3], cfg, logger); err != nil {
			fail(err)
		}
	case "records2glb":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunRecords2GLB(os.Args[2], os.Args[3]); err != nil {
			fail(err)
		}
	case "digest":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		if _, err := utils.RunDigest(os.Args[2], os.Stdout); err != nil {
			fail(err)
		}
	case "genscene":
		if len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		var count int
		var seed int64
		if _, err := fmt.Sscan(os.Args[2], &count); err != nil {
			fail(err)
		}
		if _, err := fmt.Sscan(os.Args[3], &seed); err != nil {
			fail(err)
		}
		if err := utils.RunGenerateScene(count, seed, os.Args[4]); err != nil {
			fail(err)
		}
	case "journal":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunJournalDump(os.Args[2], os.Stdout); err != nil {
			fail(err)
		}
		return
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
