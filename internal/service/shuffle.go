package service

import (
	"hash/crc32"
	"math/rand"

	"quizmaster/internal/model"
)

// ShuffleQuestionIDs permutes ids deterministically for a given seed
// string. The seed is hashed with CRC-32 (IEEE) into the numeric seed
// of a math/rand source, and the permutation is a Fisher-Yates shuffle
// walking from the last index down. Both the hash and the source are
// stable across process restarts and Go releases, so the same (ids,
// seed) pair always yields the same order within this implementation.
//
// The input is never mutated. Empty and single-element inputs come back
// as-is.
func ShuffleQuestionIDs(ids model.QuestionIDs, seed string) model.QuestionIDs {
	shuffled := make(model.QuestionIDs, len(ids))
	copy(shuffled, ids)
	if len(shuffled) < 2 {
		return shuffled
	}

	seedValue := crc32.ChecksumIEEE([]byte(seed))
	r := rand.New(rand.NewSource(int64(seedValue)))

	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
