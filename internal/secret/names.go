package secret

import "github.com/Flyrell/shopsum/internal/stringutil"

// DefaultPrefix starts every Shopify secret name.
const DefaultPrefix = "SHOPIFY"

// Names are the two secret names holding one store's credentials.
type Names struct {
	StoreURL    string
	AccessToken string
}

// All returns both names, URL first.
func (n Names) All() []string {
	return []string{n.StoreURL, n.AccessToken}
}

// NamesFor builds the secret names for a store key. An empty key selects the
// default store (SHOPIFY_STORE_URL, SHOPIFY_ACCESS_TOKEN); otherwise the key
// is embedded (SHOPIFY_<KEY>_URL, SHOPIFY_<KEY>_ACCESS_TOKEN).
func NamesFor(prefix, storeKey string) Names {
	p := stringutil.EnvKey(prefix)
	if p == "" {
		p = DefaultPrefix
	}

	key := stringutil.EnvKey(storeKey)
	if key == "" {
		return Names{
			StoreURL:    p + "_STORE_URL",
			AccessToken: p + "_ACCESS_TOKEN",
		}
	}
	return Names{
		StoreURL:    p + "_" + key + "_URL",
		AccessToken: p + "_" + key + "_ACCESS_TOKEN",
	}
}
