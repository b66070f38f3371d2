// Package catalog is a client for the IGDB game catalog.
//
// Requests are IGDB query-language bodies POSTed to an endpoint such as
// "games". The package builds the two queries the application needs,
// name search and fetch by id, and exposes the generic Query for anything else.
//
//	httpClient := httpclient.NewHTTPClient(tm)
//	games := catalog.NewClient(httpClient)
//
//	results, err := games.SearchGames(ctx, "zelda")
//	game, err := games.GetGame(ctx, 1025)
//	if errors.Is(err, catalog.ErrNotFound) {
//	    // no such game
//	}
//
// Non-success responses are reported as *QueryError.
package catalog
