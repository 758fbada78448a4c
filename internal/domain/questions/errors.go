package questions

import (
	apperrors "github.com/yanqian/lastactive/pkg/errors"
)

// CodeFetchFailed tags failures of the last-active fetch.
const CodeFetchFailed = "fetch_failed"

// ErrFetchFailed is the only failure kind a fetch can end with.
var ErrFetchFailed = apperrors.Wrap(CodeFetchFailed, "failed to fetch last active questions", nil)
