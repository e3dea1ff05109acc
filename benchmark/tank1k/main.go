package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"liyu1981.xyz/aqua-condition-service/pkg/db"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

var maxTanks int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

// the server must run with AQUA_DB_TYPE=file against the same AQUA_DB_PATH, tanks are
// owned by an upstream system so they are seeded straight into the database
func seedTanks(userID string) []string {
	dbInstance, err := db.NewInstance(db.UseSqliteDialector())
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer dbInstance.Close()

	tankIDs := make([]string, maxTanks)
	tanks := make([]models.Tank, maxTanks)
	for i := range maxTanks {
		tankIDs[i] = uuid.NewString()
		tanks[i] = models.Tank{
			ID:        tankIDs[i],
			Name:      fmt.Sprintf("bench-%d", i),
			UserID:    userID,
			CreatedAt: time.Now().UTC().AddDate(0, 0, -7),
		}
	}
	if err := dbInstance.Conn.CreateInBatches(tanks, 200).Error; err != nil {
		log.Fatal("Failed to seed tanks:", err)
	}
	return tankIDs
}

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	userID := "bench-" + uuid.NewString()
	tankIDs := seedTanks(userID)
	fmt.Printf("seeded %v tanks for %v\n", maxTanks, userID)

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxTanks {
		wg.Add(1)
		go func() {
			insertCondition(userID, tankIDs[i])
			fmt.Printf("\rinserted condition for tank %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rinserted condition for %v tanks: used time=%v seconds, throughput=%v action/second\n",
		maxTanks, usedTime.Seconds(), float64(maxTanks)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxTanks {
		wg.Add(1)
		go func() {
			doAction(userID, tankIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v tanks: used time=%v seconds, throughput=%v action/second\n",
		maxTanks, usedTime.Seconds(), float64(maxTanks*3)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func rndSleep() {
	rndMu.Lock()
	d := time.Duration(100+rnd.Int31n(1000)) * time.Millisecond
	rndMu.Unlock()
	time.Sleep(d)
}

func post(userID, path string, payload any) (int, error) {
	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("http://%s%s", httpHostPort, path), bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func insertCondition(userID, tankID string) {
	status, err := post(userID, "/conditions/threshold", map[string]any{
		"tankId":   tankID,
		"sensor":   string(models.SensorWaterTemperature),
		"operator": string(models.OperatorGT),
		"value":    rndFloat64(20.0, 30.0, 1),
		"category": string(models.ConditionCategoryAlert),
	})
	if err != nil || status != http.StatusCreated {
		panic(fmt.Sprintf("err: %v, status: %v", err, status))
	}
}

func doAction(userID, tankID string) {
	actions := []func(){
		genPostSensorDataAction(tankID),
		genPostHusbandryAction(userID, tankID),
		genGetTasksAction(userID, tankID),
	}
	actionNames := []string{
		"PostSensorData",
		"PostHusbandry",
		"GetTasks",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndMu.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for tank %v", actionNames[index], tankID)
		rndSleep()
	}
}

func genPostSensorDataAction(tankID string) func() {
	return func() {
		status, err := post("", "/tanks/"+tankID+"/sensor-data", map[string]any{
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
			"waterTemperature": rndFloat64(18.0, 32.0, 2),
			"dissolvedOxygen":  rndFloat64(4.0, 9.0, 2),
			"ph":               rndFloat64(6.0, 8.5, 2),
		})
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
		} else if status != http.StatusOK && status != http.StatusTooManyRequests {
			fmt.Printf("\nresponse status code != 200: %v\n", status)
		}
	}
}

func genPostHusbandryAction(userID, tankID string) func() {
	return func() {
		status, err := post(userID, "/tanks/"+tankID+"/husbandry", map[string]any{
			"timestamp": time.Now().UTC().Truncate(time.Hour).Format(time.RFC3339),
			"isClean":   true,
			"feedings":  []map[string]any{{"type": "pellet", "amount": rndFloat64(5.0, 50.0, 1)}},
		})
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
		} else if status != http.StatusOK && status != http.StatusTooManyRequests {
			fmt.Printf("\nresponse status code != 200: %v\n", status)
		}
	}
}

func genGetTasksAction(userID, tankID string) func() {
	return func() {
		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("http://%s/tanks/%s/tasks", httpHostPort, tankID), nil)
		req.Header.Set("X-User-ID", userID)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
		}
	}
}
