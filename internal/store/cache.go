package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/smartjourney/studio/internal/campaign"
)

var (
	bucketCampaigns = []byte("campaigns")
	bucketTemplates = []byte("templates")

	// Each collection is stored as one JSON snapshot under a fixed key,
	// overwritten in full on every commit.
	keySnapshot = []byte("snapshot")
)

// Cache is the durable local persistence surface for the record store.
type Cache interface {
	LoadCampaigns() ([]*campaign.Campaign, error)
	SaveCampaigns([]*campaign.Campaign) error
	LoadTemplates() ([]*campaign.Template, error)
	SaveTemplates([]*campaign.Template) error
	Close() error
}

// BoltCache implements Cache using BoltDB
type BoltCache struct {
	db *bolt.DB
}

// NewBoltCache opens (or creates) the snapshot database at path
func NewBoltCache(path string) (*BoltCache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketCampaigns, bucketTemplates} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltCache{db: db}, nil
}

// LoadCampaigns reads the campaign snapshot. A nil slice with a nil error
// means no snapshot has been written yet.
func (c *BoltCache) LoadCampaigns() ([]*campaign.Campaign, error) {
	var out []*campaign.Campaign

	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketCampaigns).Get(keySnapshot)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return fmt.Errorf("failed to decode campaign snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveCampaigns overwrites the campaign snapshot in full
func (c *BoltCache) SaveCampaigns(campaigns []*campaign.Campaign) error {
	data, err := json.Marshal(campaigns)
	if err != nil {
		return fmt.Errorf("failed to encode campaign snapshot: %w", err)
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketCampaigns).Put(keySnapshot, data); err != nil {
			return fmt.Errorf("failed to store campaign snapshot: %w", err)
		}
		return nil
	})
}

// LoadTemplates reads the template snapshot
func (c *BoltCache) LoadTemplates() ([]*campaign.Template, error) {
	var out []*campaign.Template

	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketTemplates).Get(keySnapshot)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return fmt.Errorf("failed to decode template snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveTemplates overwrites the template snapshot in full
func (c *BoltCache) SaveTemplates(templates []*campaign.Template) error {
	data, err := json.Marshal(templates)
	if err != nil {
		return fmt.Errorf("failed to encode template snapshot: %w", err)
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketTemplates).Put(keySnapshot, data); err != nil {
			return fmt.Errorf("failed to store template snapshot: %w", err)
		}
		return nil
	})
}

// Close closes the database
func (c *BoltCache) Close() error {
	return c.db.Close()
}
