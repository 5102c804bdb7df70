// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package store

import "strings"

// Key builders for the dotted namespace. Domains partition the flat key
// space: epg (channels and schedules), vod (groups and items), rating
// and recommend (per-user scalars and lists).

const (
	DomainEPG       = "epg"
	DomainVOD       = "vod"
	DomainRating    = "rating"
	DomainRecommend = "recommend"
)

// Key joins segments with the namespace separator.
func Key(segments ...string) string {
	return strings.Join(segments, ".")
}

// ChannelsKey addresses the ordered channel list of a provider.
func ChannelsKey(provider string) string {
	return Key(DomainEPG, provider, "channels")
}

// ProgramsKey addresses the start-timestamp list of one channel.
func ProgramsKey(provider, channel string) string {
	return Key(DomainEPG, provider, channel, "programs")
}

// EPGPrefix is the dotted prefix under which a provider's channel
// attributes live, trailing separator included.
func EPGPrefix(provider string) string {
	return Key(DomainEPG, provider) + "."
}

// VODGroupsKey addresses the group list of a provider.
func VODGroupsKey(provider string) string {
	return Key(DomainVOD, provider, "groups")
}

// VODItemsKey addresses the item list of one group.
func VODItemsKey(provider, group string) string {
	return Key(DomainVOD, provider, group, "vods")
}

// VODPrefix is the dotted prefix for a provider's VOD attributes,
// trailing separator included. Extra segments extend the prefix.
func VODPrefix(provider string, segments ...string) string {
	parts := append([]string{DomainVOD, provider}, segments...)
	return Key(parts...) + "."
}

// RatingKey addresses one rating scalar. The last two segments form a
// composite "<user>,<item>" tail after the dotted prefix.
func RatingKey(domain, provider, user, item string) string {
	return Key(DomainRating, domain, provider, user+","+item)
}

// RecommendKey addresses the per-user recommendation list written by
// the offline recommender.
func RecommendKey(provider, user string) string {
	return Key(DomainRecommend, DomainVOD, provider, user)
}
