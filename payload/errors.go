package payload

import "errors"

var ErrBadDocument = errors.New("document record content is not valid base64")
