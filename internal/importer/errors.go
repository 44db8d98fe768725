package importer

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-notion2wp/internal/source"
)

// Sentinel errors returned by the importer.
var (
	ErrNoPages             = errors.New("importer: no pages selected for import")
	ErrSourceRequired      = errors.New("importer: content source required")
	ErrSinkRequired        = errors.New("importer: post sink required")
	ErrPageIDRequired      = errors.New("importer: page id required")
	ErrListingNotSupported = errors.New("importer: source cannot list pages")
)

// Text codes attached to per page failures.
const (
	codeSourceFetchFailed = "SOURCE_FETCH_FAILED"
	codeSinkWriteFailed   = "SINK_WRITE_FAILED"
	codeConvertFailed     = "CONVERT_FAILED"
)

func wrapSourceError(err error, message string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	category := goerrors.CategoryExternal
	if errors.Is(err, source.ErrNotFound) {
		category = goerrors.CategoryNotFound
	}
	return goerrors.Wrap(err, category, message).WithTextCode(codeSourceFetchFailed)
}

func wrapSinkError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "write post").WithTextCode(codeSinkWriteFailed)
}

func wrapConvertError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "convert blocks").WithTextCode(codeConvertFailed)
}
