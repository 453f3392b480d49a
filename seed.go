package aurora

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Seed hold the primary seed used for the noise field
type Seed struct {
	intSeed int64
}

// Jan 1, 2020 (to make filenames a little smaller)
const epoch2020 = 1577836800

// Init initializes the seed
// `hexSeed` is either the empty string or a hex value
func Init(hexSeed string) (Seed, error) {
	s := Seed{intSeed: time.Now().UnixNano() - epoch2020}
	if hexSeed != "" {
		err := s.SetSeed(hexSeed)
		return s, err
	}
	return s, nil
}

// GetSeed returns the noise initialization seed
func (s Seed) GetSeed() int64 {
	return s.intSeed
}

// SetSeed sets the seed given the file seed part of filename
func (s *Seed) SetSeed(hexSeed string) error {
	v, err := strconv.ParseInt(strings.TrimPrefix(hexSeed, "0x"), 16, 64)
	if err != nil {
		return errors.Wrapf(err, "bad seed %q", hexSeed)
	}
	s.intSeed = v
	return nil
}

// GetFilename returns a string to use for this file
func (s Seed) GetFilename(prefix, ext string) string {
	return fmt.Sprintf("%s%s-%x%s", prefix, getGitHash(), s.intSeed, ext)
}

func getGitHash() string {
	cmdOut, err := exec.Command("git", "rev-parse", "--verify", "HEAD").Output()
	if err != nil {
		return ""
	}
	hash := strings.TrimSpace(string(cmdOut))
	if len(hash) < 7 {
		return hash
	}
	return hash[0:7]
}
