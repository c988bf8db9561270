// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package feed

import (
	"github.com/mybini/mybini/internal/core/character"
	"github.com/mybini/mybini/internal/core/series"
)

// Feed is the landing page payload: the full series catalogue, the newest
// characters, and a hero image rotation taken from the recent characters.
type Feed struct {
	Series     []*series.Series       `json:"series"`
	Recent     []*character.Character `json:"recent"`
	HeroImages []string               `json:"hero_images"`
}
