// hkind inspects heap block headers: it prints the kind taxonomy, packs and
// decodes header words, and summarizes heap snapshots.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/heapkind/manifest"
	"github.com/chazu/heapkind/snapshot"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	configDir := flag.String("C", ".", "Directory to search upward for heapkind.toml")
	table := flag.Bool("table", false, "Print the kind taxonomy")
	offsets := flag.Bool("offsets", false, "Print block offsets for the configured target")
	decode := flag.String("decode", "", "Decode a packed header word (hex or decimal)")
	pack := flag.String("pack", "", "Pack a header word for the named kind")
	aux := flag.Uint("aux", 0, "Aux value used with -pack (0-65535)")
	census := flag.String("census", "", "Summarize a snapshot file")
	capture := flag.String("capture", "", "Capture a snapshot of a raw arena file (needs -starts)")
	starts := flag.String("starts", "", "File listing block start offsets, used with -capture")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hkind [options]\n\n")
		fmt.Fprintf(os.Stderr, "Inspects heap block headers and snapshots.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hkind -table                 # List every kind and its group\n")
		fmt.Fprintf(os.Stderr, "  hkind -decode 0x000e1234     # Decode a header word\n")
		fmt.Fprintf(os.Stderr, "  hkind -pack Map -aux 0x1234  # Pack a header word\n")
		fmt.Fprintf(os.Stderr, "  hkind -census heap.snap      # Count blocks by kind\n")
		fmt.Fprintf(os.Stderr, "  hkind -capture arena.bin -starts blocks.txt  # Write a snapshot per heapkind.toml\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)
	log := commonlog.GetLogger("heapkind.cli")

	m, err := loadManifest(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Debugf("target %s, pointer size %d", m.Target.Name, m.Target.PointerSize)

	ran := false
	if *table {
		printTable(os.Stdout)
		ran = true
	}
	if *offsets {
		printOffsets(os.Stdout, m)
		ran = true
	}
	if *decode != "" {
		if err := printDecode(os.Stdout, *decode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ran = true
	}
	if *pack != "" {
		if err := printPack(os.Stdout, *pack, *aux); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ran = true
	}
	if *capture != "" {
		if *starts == "" {
			fmt.Fprintf(os.Stderr, "Error: -capture needs -starts\n")
			os.Exit(2)
		}
		s, out, err := captureArena(m, *capture, *starts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log.Infof("wrote %d blocks to %s", len(s.Blocks), out)
		printCensus(os.Stdout, s)
		ran = true
	}
	if *census != "" {
		s, err := snapshot.ReadFile(*census)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if s.PointerSize != m.Target.PointerSize {
			log.Warningf("snapshot pointer size %d differs from target %s (%d)", s.PointerSize, m.Target.Name, m.Target.PointerSize)
		}
		printCensus(os.Stdout, s)
		ran = true
	}

	if !ran {
		flag.Usage()
		os.Exit(2)
	}
}

// loadManifest finds heapkind.toml above dir, falling back to host defaults.
func loadManifest(dir string) (*manifest.Manifest, error) {
	m, err := manifest.FindAndLoad(dir)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return manifest.Default(), nil
	}
	return m, nil
}
