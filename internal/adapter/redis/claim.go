package redis

import (
	"context"
	"sort"

	goredis "github.com/redis/go-redis/v9"
)

// claimScript claims a unique lookup key and writes the record it points at
// in one step, so a lookup key can never outlive a failed write.
//
//	KEYS[1]  lookup key
//	KEYS[2]  record hash
//	KEYS[3:] index sets that receive the record id
//	ARGV[1]  record key prefix, used to check an existing claim's target
//	ARGV[2]  record id
//	ARGV[3:] hash field/value pairs
//
// An existing claim whose record hash is gone is taken over. The script
// reads the old target outside KEYS, which ties it to a single-node Redis.
var claimScript = goredis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current and redis.call('EXISTS', ARGV[1] .. current) == 1 then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2])
redis.call('HSET', KEYS[2], unpack(ARGV, 3))
for i = 3, #KEYS do
	redis.call('SADD', KEYS[i], ARGV[2])
end
return 1
`)

// claimRecord runs claimScript. It reports false when the lookup key already
// belongs to a live record.
func claimRecord(
	ctx context.Context,
	client *goredis.Client,
	lookupKey, recordPrefix, id, hashKey string,
	fields map[string]any,
	indexes ...string,
) (bool, error) {
	keys := append([]string{lookupKey, hashKey}, indexes...)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]any, 0, 2+2*len(fields))
	args = append(args, recordPrefix, id)
	for _, name := range names {
		args = append(args, name, fields[name])
	}

	claimed, err := claimScript.Run(ctx, client, keys, args...).Int()
	if err != nil {
		return false, err
	}
	return claimed == 1, nil
}
