// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/alekmarinov/avtv/internal/metrics"
)

// The time-window scan runs server-side so that one round trip covers
// the channel list, every per-channel schedule, and the projected
// attributes, and so that the whole read is atomic with respect to
// concurrent catalog updates.
//
// For each scanned channel the script sorts its program-start list
// ascending and walks adjacent pairs (start_i, start_{i+1}) as airing
// intervals. With a "when" argument, the interval containing it becomes
// the anchor; without one, the first interval does. The output slice
// [anchor+offset, anchor+offset+count-1] is clamped into the valid
// interval range at both ends.
//
// The flat reply has a fixed stride of 3+len(attrs): channel, start,
// stop, then one entry per projected attribute, nil where absent (lua
// false converts to a nil reply element).
const windowScanSrc = `
local provider = ARGV[1]
local channel = ARGV[2]
local when = nil
if ARGV[3] ~= '' then when = tonumber(ARGV[3]) end
local offset = tonumber(ARGV[4])
local count = tonumber(ARGV[5])
local attrs = {}
for i = 6, #ARGV do attrs[#attrs + 1] = ARGV[i] end

local prefix = 'epg.' .. provider .. '.'
local channels
if channel ~= '' then
  channels = { channel }
else
  channels = redis.call('lrange', prefix .. 'channels', 0, -1)
end

local out = {}
for _, ch in ipairs(channels) do
  local starts = redis.call('lrange', prefix .. ch .. '.programs', 0, -1)
  local nums = {}
  for i = 1, #starts do nums[i] = tonumber(starts[i]) end
  table.sort(nums)
  local intervals = #nums - 1
  if intervals >= 1 then
    local anchor = nil
    if when then
      for i = 1, intervals do
        if nums[i] <= when and when < nums[i + 1] then
          anchor = i
          break
        end
      end
    else
      anchor = 1
    end
    if anchor then
      local lo = anchor + offset
      local hi = lo + count - 1
      if lo < 1 then lo = 1 end
      if lo > intervals then lo = intervals end
      if hi < 1 then hi = 1 end
      if hi > intervals then hi = intervals end
      for i = lo, hi do
        local start = nums[i]
        out[#out + 1] = ch
        out[#out + 1] = tostring(start)
        out[#out + 1] = tostring(nums[i + 1])
        for _, attr in ipairs(attrs) do
          out[#out + 1] = redis.call('get', prefix .. ch .. '.' .. start .. '.' .. attr)
        end
      end
    end
  end
end
return out
`

var windowScan = redis.NewScript(windowScanSrc)

// WindowScan executes the scan and decodes the flat reply into rows.
func (r *Redis) WindowScan(ctx context.Context, q *WindowQuery) ([]WindowRow, error) {
	count := q.Count
	if count < 1 {
		count = 1
	}
	when := ""
	if q.When != nil {
		when = strconv.FormatInt(*q.When, 10)
	}

	argv := make([]any, 0, 5+len(q.Attrs))
	argv = append(argv, q.Provider, q.Channel, when, q.Offset, count)
	for _, attr := range q.Attrs {
		argv = append(argv, attr)
	}

	vals, err := windowScan.Run(ctx, r.rdb, []string{}, argv...).Slice()
	if err != nil {
		metrics.StoreErrors.WithLabelValues("window_scan").Inc()
		return nil, fmt.Errorf("store: window scan: %w", err)
	}

	stride := 3 + len(q.Attrs)
	if len(vals)%stride != 0 {
		return nil, fmt.Errorf("store: window scan: reply length %d not a multiple of %d", len(vals), stride)
	}

	rows := make([]WindowRow, 0, len(vals)/stride)
	for i := 0; i < len(vals); i += stride {
		row := WindowRow{Attrs: make([]any, len(q.Attrs))}
		var ok bool
		if row.Channel, ok = vals[i].(string); !ok {
			return nil, fmt.Errorf("store: window scan: unexpected channel cell %T", vals[i])
		}
		if row.Start, err = cellInt64(vals[i+1]); err != nil {
			return nil, fmt.Errorf("store: window scan: start: %w", err)
		}
		if row.Stop, err = cellInt64(vals[i+2]); err != nil {
			return nil, fmt.Errorf("store: window scan: stop: %w", err)
		}
		copy(row.Attrs, vals[i+3:i+stride])
		rows = append(rows, row)
	}
	return rows, nil
}

func cellInt64(v any) (int64, error) {
	switch t := v.(type) {
	case string:
		return strconv.ParseInt(t, 10, 64)
	case int64:
		return t, nil
	default:
		return 0, fmt.Errorf("unexpected cell %T", v)
	}
}
