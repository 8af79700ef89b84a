package repository

import "errors"

// 対象が存在しない
var ErrNotFound = errors.New("not found")

// 一意制約違反（同じキーが既にある）
var ErrConflict = errors.New("conflict")
