package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultDictionary is the fixed pool of common English words documents are
// sampled from. Words carry no semantic relationship to each other; the point
// is pattern-free text a model can only reproduce by memorizing it.
var DefaultDictionary = []string{
	"time", "year", "people", "way", "day", "man", "thing", "woman", "life",
	"child", "world", "school", "state", "family", "student", "group",
	"country", "problem", "hand", "part", "place", "case", "week", "company",
	"system", "program", "question", "work", "government", "number", "night",
	"point", "home", "water", "room", "mother", "area", "money", "story",
	"fact", "month", "lot", "right", "study", "book", "eye", "job", "word",
	"business", "issue", "side", "kind", "head", "house", "service", "friend",
	"father", "power", "hour", "game", "line", "end", "member", "law", "car",
	"city", "community", "name", "president", "team", "minute", "idea",
	"body", "information", "back", "parent", "face", "others", "level",
	"office", "door", "health", "person", "art", "war", "history", "party",
	"result", "change", "morning", "reason", "research", "girl", "guy",
	"moment", "air", "teacher", "force", "education", "foot", "boy", "age",
	"policy", "process", "music", "market", "sense", "nation", "plan",
	"college", "interest", "death", "experience", "effect", "use", "class",
	"control", "care", "field", "development", "role", "effort", "rate",
	"heart", "drug", "show", "leader", "light", "voice", "wife", "police",
	"mind", "price", "report", "decision", "son", "view", "relationship",
	"town", "road", "arm", "difference", "value", "building", "action",
	"model", "season", "society", "tax", "director", "position", "player",
	"record", "paper", "space", "ground", "form", "event", "official",
	"matter", "center", "couple", "site", "project", "activity", "star",
	"table", "need", "court", "american", "oil", "situation", "cost",
	"industry", "figure", "street", "image", "phone", "data", "picture",
	"practice", "piece", "land", "product", "doctor", "wall", "patient",
	"worker", "news", "test", "movie", "north", "love", "support",
	"technology", "step", "baby", "computer", "type", "attention", "film",
	"tree", "source", "play", "section", "letter", "choice", "range",
	"reality", "sound", "list", "subject", "rule", "dog", "glass", "window",
	"church", "future", "past", "bank", "risk", "fire", "security", "bed",
	"brother", "chance", "energy", "period", "summer", "sister", "quality",
	"bill", "floor", "campaign", "material", "performance", "stage", "size",
	"property", "card", "salt", "goal", "wind", "stone", "river",
	"mountain", "garden", "bridge", "island", "ocean", "forest", "valley",
	"cloud", "storm", "shadow", "silver", "copper", "iron", "marble",
	"cotton", "lantern", "harbor", "meadow", "orchard", "anchor", "compass",
	"ledger", "canvas", "timber", "willow", "cedar", "maple", "granite",
}

// LoadDictionary reads a word list from a file, one word per line. Blank
// lines are skipped. Mirrors the held-out word-list format consumed by the
// evaluation harness.
func LoadDictionary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		if strings.ContainsAny(w, " \t") {
			return nil, fmt.Errorf("dictionary: multiple words at line %d", lineNo)
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("dictionary %s is empty", path)
	}
	return words, nil
}
