package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// seed writes small author and works dumps in the Open Library export
// format, for trying the loader without downloading the real dumps.
func main() {
	var (
		dir      = flag.String("dir", "data", "Directory to write the dump files to")
		authors  = flag.Int("authors", 100, "Number of authors to generate")
		works    = flag.Int("works", 1000, "Number of works to generate")
		seed     = flag.Int64("seed", 1, "Random seed")
		unknownN = flag.Int("unknown-every", 10, "Every Nth work references an author missing from the author dump (0 disables)")
	)
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *dir, err)
	}
	rng := rand.New(rand.NewSource(*seed))

	authorsPath := filepath.Join(*dir, "ol_dump_authors.txt")
	if err := writeDump(authorsPath, *authors, func(i int) (string, any) {
		return "/type/author", authorRecord(rng, i)
	}); err != nil {
		log.Fatalf("Failed to write authors: %v", err)
	}
	log.Printf("Wrote %d authors to %s", *authors, authorsPath)

	worksPath := filepath.Join(*dir, "ol_dump_works.txt")
	if err := writeDump(worksPath, *works, func(i int) (string, any) {
		return "/type/work", workRecord(rng, i, *authors, *unknownN)
	}); err != nil {
		log.Fatalf("Failed to write works: %v", err)
	}
	log.Printf("Wrote %d works to %s", *works, worksPath)
}

type keyRef struct {
	Key string `json:"key"`
}

type textValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type authorRef struct {
	Type   keyRef `json:"type"`
	Author keyRef `json:"author"`
}

func authorRecord(rng *rand.Rand, i int) map[string]any {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	rec := map[string]any{
		"key":  authorKey(i),
		"name": first + " " + last,
	}
	if rng.Intn(3) > 0 {
		rec["personal_name"] = last + ", " + first
	}
	return rec
}

func workRecord(rng *rand.Rand, i, authorCount, unknownEvery int) map[string]any {
	rec := map[string]any{
		"key":   fmt.Sprintf("/works/OL%dW", i+1),
		"title": fmt.Sprintf("The %s of %s", getRandomWord(rng), getRandomWord(rng)),
		"created": textValue{
			Type:  "/type/datetime",
			Value: randomTime(rng).Format("2006-01-02T15:04:05.000000"),
		},
	}

	// The real dump mixes both description shapes.
	desc := fmt.Sprintf("A book about %s and %s.", getRandomWord(rng), getRandomWord(rng))
	switch rng.Intn(3) {
	case 0:
		rec["description"] = textValue{Type: "/type/text", Value: desc}
	case 1:
		rec["description"] = desc
	}

	if n := rng.Intn(4); n > 0 {
		covers := make([]int, n)
		for j := range covers {
			covers[j] = 1000000 + rng.Intn(9000000)
		}
		rec["covers"] = covers
	}

	if authorCount > 0 {
		refs := make([]authorRef, 1+rng.Intn(2))
		for j := range refs {
			key := authorKey(rng.Intn(authorCount))
			if unknownEvery > 0 && i%unknownEvery == 0 && j == 0 {
				key = authorKey(authorCount + i)
			}
			refs[j] = authorRef{Type: keyRef{Key: "/type/author_role"}, Author: keyRef{Key: key}}
		}
		rec["authors"] = refs
	}
	return rec
}

func authorKey(i int) string {
	return fmt.Sprintf("/authors/OL%dA", i+1)
}

func randomTime(rng *rand.Rand) time.Time {
	start := time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.Add(time.Duration(rng.Int63n(int64(15 * 365 * 24 * time.Hour))))
}

// writeDump writes count lines of the form
// type<TAB>key<TAB>revision<TAB>last_modified<TAB>json.
func writeDump(path string, count int, record func(i int) (string, any)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	now := time.Now().UTC().Format("2006-01-02T15:04:05.000000")
	for i := 0; i < count; i++ {
		typ, rec := record(i)
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		key := ""
		if m, ok := rec.(map[string]any); ok {
			key, _ = m["key"].(string)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t1\t%s\t%s\n", typ, key, now, b); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

var (
	firstNames = []string{"Ada", "Charles", "Jane", "Leo", "Mary", "Fyodor", "Virginia", "Gabriel", "Toni", "Haruki"}
	lastNames  = []string{"Austen", "Dickens", "Tolstoy", "Shelley", "Woolf", "Morrison", "Murakami", "Marquez", "Eliot", "Byron"}
)

func getRandomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rng.Intn(len(words))]
}
