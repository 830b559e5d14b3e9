package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

const (
	keyPrefix        = "availability:"
	generationPrefix = "availability:gen:"

	// minGenerationTTL счетчик поколения живет заметно дольше данных,
	// иначе после его истечения читатели могли бы вернуться к старому поколению
	minGenerationTTL = 24 * time.Hour
)

// setScript пишет поле только если поколение даты не изменилось с момента чтения.
// TTL ставится один раз, при создании hash.
// KEYS: генерация, hash. ARGV: поколение, поле, значение, ttl в мс
const setScript = `
if (redis.call('GET', KEYS[1]) or '0') ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[2], ARGV[2], ARGV[3])
if redis.call('PTTL', KEYS[2]) < 0 then
	redis.call('PEXPIRE', KEYS[2], ARGV[4])
end
return 1
`

type entry struct {
	Lunch  []types.TimeString `json:"lunch"`
	Dinner []types.TimeString `json:"dinner"`
}

// AvailabilityCache хранит рассчитанные слоты в hash availability:{date}:{generation},
// поле - число гостей. Invalidate увеличивает поколение даты: старые hash больше не читаются
// и истекают по TTL, а запись, рассчитанная до сброса, отклоняется.
type AvailabilityCache struct {
	client        Client
	ttl           time.Duration
	generationTTL time.Duration
}

// NewAvailabilityCache создает кеш доступности
func NewAvailabilityCache(client Client, ttl time.Duration) *AvailabilityCache {
	generationTTL := minGenerationTTL
	if 2*ttl > generationTTL {
		generationTTL = 2 * ttl
	}
	return &AvailabilityCache{client: client, ttl: ttl, generationTTL: generationTTL}
}

// Get возвращает слоты из кеша и текущее поколение даты. Промах - (nil, generation, nil).
// Поколение нужно передать в Set вместе с результатом расчета
func (c *AvailabilityCache) Get(ctx context.Context, date time.Time, guests int) (*domain.DaySlots, int64, error) {
	generation, err := c.generation(ctx, date)
	if err != nil {
		return nil, 0, err
	}

	raw, err := c.client.HGet(ctx, Key(date, generation), strconv.Itoa(guests)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, generation, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: hget: %v", ErrRedis, err)
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &domain.DaySlots{Lunch: e.Lunch, Dinner: e.Dinner}, generation, nil
}

// Set сохраняет слоты, если поколение даты все еще равно generation.
// Возвращает false, если дату успели сбросить и запись пропущена
func (c *AvailabilityCache) Set(ctx context.Context, date time.Time, guests int, generation int64, slots *domain.DaySlots) (bool, error) {
	body, err := json.Marshal(entry{Lunch: slots.Lunch, Dinner: slots.Dinner})
	if err != nil {
		return false, fmt.Errorf("%w: marshal: %v", ErrDecode, err)
	}

	stored, err := c.client.Eval(ctx, setScript,
		[]string{GenerationKey(date), Key(date, generation)},
		strconv.FormatInt(generation, 10),
		strconv.Itoa(guests),
		string(body),
		c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("%w: set: %v", ErrRedis, err)
	}

	return stored == 1, nil
}

// Invalidate сбрасывает все закешированные ответы на дату
func (c *AvailabilityCache) Invalidate(ctx context.Context, date time.Time) error {
	key := GenerationKey(date)
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: incr: %v", ErrRedis, err)
	}
	if err := c.client.Expire(ctx, key, c.generationTTL).Err(); err != nil {
		return fmt.Errorf("%w: expire: %v", ErrRedis, err)
	}
	return nil
}

func (c *AvailabilityCache) generation(ctx context.Context, date time.Time) (int64, error) {
	generation, err := c.client.Get(ctx, GenerationKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: get generation: %v", ErrRedis, err)
	}
	return generation, nil
}

// Key ключ hash для даты и поколения
func Key(date time.Time, generation int64) string {
	return keyPrefix + date.Format(domain.DateFormat) + ":" + strconv.FormatInt(generation, 10)
}

// GenerationKey ключ счетчика поколения даты
func GenerationKey(date time.Time) string {
	return generationPrefix + date.Format(domain.DateFormat)
}
