// SPDX-License-Identifier: EPL-2.0

// Command stegwave embeds encrypted payloads in audio files and extracts
// them again.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"stegwave"
	"stegwave/payload"
	"stegwave/wavio"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("no command specified")
	}

	switch os.Args[1] {
	case "embed":
		return cmdEmbed(os.Args[2:])
	case "extract":
		return cmdExtract(os.Args[2:])
	case "sample":
		return cmdSample(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Fprintf(os.Stderr, "stegwave version %s\n", version)
		return nil
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func cmdEmbed(args []string) error {
	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	in := fs.String("in", "", "carrier audio file (empty: synthesize a 10s 440Hz sample)")
	out := fs.String("out", "stego.wav", "output stego file")
	text := fs.String("text", "", "text message to embed")
	image := fs.String("image", "", "image file to embed")
	document := fs.String("document", "", "document file to embed")
	wavelet := fs.String("wavelet", "db2", "wavelet basis: haar, db2 or db4")
	level := fs.Int("level", 1, "decomposition level")
	alpha := fs.Float64("alpha", 0.001, "embedding strength")
	rsaBits := fs.Int("rsa-bits", 2048, "RSA modulus size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var msg stegwave.Message
	switch {
	case *text != "":
		msg = stegwave.Text(*text)
	case *image != "":
		msg = stegwave.ImageFile(*image)
	case *document != "":
		msg = stegwave.DocumentFile(*document)
	default:
		return fmt.Errorf("one of -text, -image or -document is required")
	}

	carrier := *in
	if carrier == "" {
		carrier = filepath.Join(filepath.Dir(*out), "sample.wav")
		fmt.Printf("No carrier given, synthesizing %s\n", carrier)
		if err := wavio.WriteFile(carrier, wavio.Sine(440, 10, 44100)); err != nil {
			return err
		}
	}

	p, err := stegwave.New(stegwave.Config{
		Wavelet: *wavelet,
		Level:   *level,
		Alpha:   *alpha,
		RSABits: *rsaBits,
	})
	if err != nil {
		return err
	}

	fmt.Println("Generating keys and embedding (RSA key generation may take a moment)...")
	info, err := p.Embed(carrier, *out, msg)
	if err != nil {
		return err
	}

	fmt.Printf("Embedded %d bits into %s\n", info.BitsLength, *out)
	fmt.Printf("Keys saved to %s.key\n", *out)
	fmt.Printf("Extraction record saved to %s.info\n", *out)
	return nil
}

func cmdExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	in := fs.String("in", "", "stego audio file")
	infoPath := fs.String("info", "", "extraction record (default: <in>.info)")
	outDir := fs.String("out-dir", ".", "directory for extracted files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("-in is required")
	}

	p, err := stegwave.New(stegwave.DefaultConfig())
	if err != nil {
		return err
	}

	var result *payload.Result
	if *infoPath != "" {
		info, err := stegwave.LoadInfo(*infoPath)
		if err != nil {
			return err
		}
		result, err = p.ExtractWithInfo(*in, info)
		if err != nil {
			return err
		}
	} else {
		result, err = p.Extract(*in)
		if err != nil {
			return err
		}
	}

	switch result.Kind {
	case payload.Text:
		fmt.Printf("Extracted message:\n%s\n", result.Text)
	case payload.Image:
		path := filepath.Join(*outDir, "extracted_image")
		if err := os.WriteFile(path, result.Data, 0o600); err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
		fmt.Printf("Extracted image saved to %s (%d bytes)\n", path, len(result.Data))
	case payload.Document:
		name := result.Filename
		if name == "" {
			name = "extracted_document"
		}
		path := filepath.Join(*outDir, filepath.Base(name))
		if err := os.WriteFile(path, result.Data, 0o600); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
		fmt.Printf("Extracted document saved to %s (%d bytes)\n", path, len(result.Data))
	}
	return nil
}

func cmdSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	out := fs.String("out", "sample.wav", "output file")
	freq := fs.Float64("freq", 440, "tone frequency in Hz")
	duration := fs.Float64("duration", 10, "duration in seconds")
	rate := fs.Int("rate", 44100, "sample rate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := wavio.WriteFile(*out, wavio.Sine(*freq, *duration, *rate)); err != nil {
		return err
	}
	fmt.Printf("Wrote %gs %gHz sample to %s\n", *duration, *freq, *out)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `stegwave - hide encrypted payloads in audio files

Usage:
  stegwave embed   -text "secret" [-in carrier.wav] [-out stego.wav]
                   [-image photo.png | -document report.pdf]
                   [-wavelet db2] [-level 1] [-alpha 0.001] [-rsa-bits 2048]
  stegwave extract -in stego.wav [-info stego.wav.info] [-out-dir .]
  stegwave sample  [-out sample.wav] [-freq 440] [-duration 10] [-rate 44100]

Embedding writes three files: the stego waveform, <out>.key with both key
pairs, and <out>.info with the record extraction needs.
`)
}
