// Package jikan provides a typed client for the Jikan v3 REST API.
//
// Jikan is an unofficial, read-only API over MyAnimeList data. This package
// covers season listings, top rankings and user anime/manga lists.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := jikan.NewClient(logger,
//		jikan.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	season, err := client.GetSeason(ctx, 1970, jikan.SeasonSpring)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(season.Name.OrEmpty(), len(season.Entries))
//
// # Request pipeline
//
// Every operation validates its parameters, builds the request URL, fetches
// the body through a Transport, decodes it with a Parser and maps the result
// into the exported types. Validation happens before any I/O: an invalid page,
// year, username or enum value never reaches the network.
//
// Enum parameters are closed sets. A value outside the declared constants,
// such as TopAnimeExtension(42), is rejected rather than clamped.
//
// # Absent values
//
// Optional response fields are mo.Option values. Nested lists are always
// non-nil. Dates the API formats as free text ("Jan 1988") are kept verbatim;
// timestamp fields that fail to parse are absent.
//
// # Error Handling
//
// The package defines several error types:
//
//   - ValidationError: a parameter was rejected (errors.Is(err, ErrValidation))
//   - RequestError: the transport failed or the server returned a non-200 status
//   - ParseError: the body was not the expected JSON document
//   - MappingError: a status field held a value outside its enum
//
// Request errors include helper methods for classification:
//
//	var reqErr *jikan.RequestError
//	if errors.As(err, &reqErr) && reqErr.IsRateLimited() {
//		// back off
//	}
//
// With WithSuppressErrors(true), request and parse failures return a nil
// result and a nil error. Validation and mapping errors are still returned,
// and so is context cancellation.
package jikan
