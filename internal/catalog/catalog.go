package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AI2HU/gdc/internal/models"
)

//go:embed season1.yaml
var defaultCatalog []byte

// ErrEpisodeNotFound is returned when an episode id is not in the catalog
var ErrEpisodeNotFound = errors.New("episode not found")

// Thumbnail qualities understood by ThumbnailURL
const (
	QualityDefault = "default"
	QualityHQ      = "hq"
	QualityMaxRes  = "maxres"
)

var thumbnailQualities = map[string]string{
	QualityDefault: "default",
	QualityHQ:      "hqdefault",
	QualityMaxRes:  "maxresdefault",
}

// file is the on-disk shape of a catalog
type file struct {
	Episodes []models.Episode `yaml:"episodes"`
}

// Catalog is the ordered, read-only list of episodes
type Catalog struct {
	episodes []models.Episode
	index    map[int]int
}

// New validates the episodes and builds a catalog that keeps their order
func New(episodes []models.Episode) (*Catalog, error) {
	if err := Validate(episodes); err != nil {
		return nil, err
	}

	c := &Catalog{
		episodes: make([]models.Episode, len(episodes)),
		index:    make(map[int]int, len(episodes)),
	}
	for i, ep := range episodes {
		if ep.ThumbnailURL == "" && ep.YouTubeID != "" {
			ep.ThumbnailURL = ThumbnailURL(ep.YouTubeID, QualityHQ)
		}
		c.episodes[i] = ep
		c.index[ep.ID] = i
	}

	return c, nil
}

// Default returns the built-in season catalog
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Parse builds a catalog from YAML
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Episodes)
}

// Load reads a catalog file. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	return Parse(data)
}

// Validate checks that ids are unique positive integers and episode numbers are unique
func Validate(episodes []models.Episode) error {
	ids := make(map[int]bool, len(episodes))
	numbers := make(map[int]bool, len(episodes))

	for _, ep := range episodes {
		if ep.ID <= 0 {
			return fmt.Errorf("episode %q has non-positive id %d", ep.Slug, ep.ID)
		}
		if ids[ep.ID] {
			return fmt.Errorf("duplicate episode id %d", ep.ID)
		}
		ids[ep.ID] = true

		if numbers[ep.EpisodeNumber] {
			return fmt.Errorf("duplicate episode number %d", ep.EpisodeNumber)
		}
		numbers[ep.EpisodeNumber] = true

		if ep.Duration < 0 {
			return fmt.Errorf("episode %d has negative duration", ep.ID)
		}
	}

	return nil
}

// List returns a copy of every episode in catalog order
func (c *Catalog) List() []models.Episode {
	out := make([]models.Episode, len(c.episodes))
	copy(out, c.episodes)
	return out
}

// Len returns the number of episodes
func (c *Catalog) Len() int {
	return len(c.episodes)
}

// Get returns the episode with the given id
func (c *Catalog) Get(id int) (models.Episode, error) {
	i, ok := c.index[id]
	if !ok {
		return models.Episode{}, fmt.Errorf("%w: %d", ErrEpisodeNotFound, id)
	}
	return c.episodes[i], nil
}

// ByState returns the episodes in the given display state, in catalog order
func (c *Catalog) ByState(state models.DisplayState) []models.Episode {
	var out []models.Episode
	for i := range c.episodes {
		if c.episodes[i].DisplayState() == state {
			out = append(out, c.episodes[i])
		}
	}
	return out
}

// Playable returns the released episodes
func (c *Catalog) Playable() []models.Episode {
	return c.ByState(models.Playable)
}

// Featured returns the first featured playable episode, falling back to the first playable one
func (c *Catalog) Featured() (models.Episode, bool) {
	playable := c.Playable()
	for _, ep := range playable {
		if ep.Featured {
			return ep, true
		}
	}
	if len(playable) > 0 {
		return playable[0], true
	}
	return models.Episode{}, false
}

// Next returns the playable episode after id
func (c *Catalog) Next(id int) (models.Episode, bool) {
	return c.neighbour(id, 1)
}

// Previous returns the playable episode before id
func (c *Catalog) Previous(id int) (models.Episode, bool) {
	return c.neighbour(id, -1)
}

func (c *Catalog) neighbour(id int, step int) (models.Episode, bool) {
	playable := c.Playable()
	for i, ep := range playable {
		if ep.ID != id {
			continue
		}
		j := i + step
		if j < 0 || j >= len(playable) {
			return models.Episode{}, false
		}
		return playable[j], true
	}
	return models.Episode{}, false
}

// ThumbnailURL builds the video platform thumbnail address for a video id
func ThumbnailURL(youtubeID, quality string) string {
	q, ok := thumbnailQualities[quality]
	if !ok {
		q = thumbnailQualities[QualityHQ]
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/%s.jpg", youtubeID, q)
}
