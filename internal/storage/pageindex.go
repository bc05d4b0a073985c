package storage

import "github.com/callumalpass/inkwell-sub004/internal/models"

// The page index is the single global lookup table mapping page IDs to
// their owning notebook. Mutations happen under the data-root lock; plain
// reads go without it, which is safe because WriteJSON replaces the file
// atomically.

// loadPageIndex reads the index, treating a missing or unparseable file as
// empty so the store keeps working after manual edits go wrong.
func loadPageIndex(store *FileStore) (models.PageIndex, error) {
	idx, err := ReadJSON[map[string]models.PageIndexEntry](store.PageIndexFile())
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return models.PageIndex{}, nil
	}
	return *idx, nil
}

func savePageIndex(store *FileStore, idx models.PageIndex) error {
	return WriteJSON(store.PageIndexFile(), idx)
}
