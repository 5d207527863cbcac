package secret

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// DotenvFile is the dotenv file looked up in the working directory.
const DotenvFile = ".env"

// LoadDotenv reads a dotenv file into a read-only store without touching the
// process environment. A missing file yields an empty store.
func LoadDotenv(path string) (MapStore, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return MapStore{}, nil
	}
	if err != nil {
		return nil, err
	}
	return MapStore(values), nil
}
