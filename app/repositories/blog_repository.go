package repositories

import (
	"sort"
	"sync"
	"time"

	"textify/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// BadgerBlogRepository implements BlogRepository using BadgerDB.
// Posts are stored as JSON documents under BlogKeyPrefix with a storage
// level TTL, so expiry is enforced by the store rather than a sweep.
type BadgerBlogRepository struct {
	db  *badger.DB
	ttl time.Duration

	// Serializes reply appends. The read-modify-write on one document
	// would otherwise surface as ErrConflict under concurrent replies.
	appendMu sync.Mutex
}

// NewBadgerBlogRepository creates a new BadgerBlogRepository. A zero ttl
// disables expiry.
func NewBadgerBlogRepository(db *badger.DB, ttl time.Duration) *BadgerBlogRepository {
	return &BadgerBlogRepository{db: db, ttl: ttl}
}

// Create persists a new blog post with a generated ID and creation time.
func (r *BadgerBlogRepository) Create(blog *models.Blog) error {
	blog.ID = uuid.NewString()
	blog.BeforeCreate()

	data, err := marshalEntity(blog)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(blogKey(blog.ID), data)
		if r.ttl > 0 {
			entry = entry.WithTTL(r.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// GetByID retrieves a blog post by ID. Unknown and expired IDs both
// surface as ErrNotFound.
func (r *BadgerBlogRepository) GetByID(id string) (*models.Blog, error) {
	var blog models.Blog

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blogKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &blog)
		})
	})

	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// List retrieves a page of blog posts sorted newest first.
func (r *BadgerBlogRepository) List(limit, offset int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(BlogKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var blog models.Blog
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &blog)
			})
			if err != nil {
				return err
			}
			blogs = append(blogs, &blog)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Badger iterates in key order; the listing contract is newest first.
	sort.SliceStable(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})

	if offset >= len(blogs) {
		return []*models.Blog{}, nil
	}
	end := offset + limit
	if end > len(blogs) {
		end = len(blogs)
	}
	return blogs[offset:end], nil
}

// Count returns the total number of blog posts.
func (r *BadgerBlogRepository) Count() (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(BlogKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountSince returns the number of blog posts created at or after t.
func (r *BadgerBlogRepository) CountSince(t time.Time) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(BlogKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var blog models.Blog
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &blog)
			})
			if err != nil {
				return err
			}
			if !blog.CreatedAt.Before(t) {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AppendReply appends a reply to a blog post and persists the whole
// document in one transaction, so two simultaneous replies cannot lose
// an update. The entry keeps its remaining TTL; replies never extend a
// post's life.
func (r *BadgerBlogRepository) AppendReply(id string, reply *models.Reply) error {
	r.appendMu.Lock()
	defer r.appendMu.Unlock()

	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(blogKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var blog models.Blog
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &blog)
		}); err != nil {
			return err
		}

		if err := blog.AddReply(reply); err != nil {
			return err
		}

		data, err := marshalEntity(&blog)
		if err != nil {
			return err
		}

		entry := badger.NewEntry(blogKey(id), data)
		if exp := item.ExpiresAt(); exp > 0 {
			entry = entry.WithTTL(time.Until(time.Unix(int64(exp), 0)))
		}
		return txn.SetEntry(entry)
	})
}
