package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/anima2d/engine/assets/loaders"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrClosed        = errors.New("asset manager already closed")
)

// ShaderDir is the sub-directory of the assets root holding shader stages.
const ShaderDir = "shaders"

const changeBufferSize = 16

type AssetInfo struct {
	Path       string
	Type       loaders.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the files below an assets directory and keeps the
// index current with a recursive fsnotify watch. Shader edits are reported on
// ShaderChanges so the render thread can reload them.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[loaders.ResourceType]Loader

	mutex sync.RWMutex

	done          chan struct{}
	wg            sync.WaitGroup
	fsnotify      *fsnotify.Watcher
	isClosed      bool
	shaderChanges chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:        make(map[string]AssetInfo),
		loaders:       make(map[loaders.ResourceType]Loader),
		fsnotify:      fsWatch,
		done:          make(chan struct{}),
		shaderChanges: make(chan string, changeBufferSize),
	}, nil
}

// Initialize indexes and watches assetsDir. A missing directory is not an
// error: the manager stays empty and callers fall back to built-in assets.
func (am *AssetManager) Initialize(assetsDir string) error {
	// Register loaders
	am.registerLoader(loaders.ResourceTypeShader, &loaders.ShaderLoader{})

	am.root = filepath.Clean(assetsDir)
	if s, err := os.Stat(am.root); err != nil || !s.IsDir() {
		core.LogWarn("assets directory %q not found, using built-in assets", am.root)
		return nil
	}

	if err := am.addRecursive(am.root); err != nil {
		return err
	}

	am.wg.Add(1)
	go am.start()
	core.LogInfo("watching assets in %s", am.root)
	return nil
}

// Shutdown stops the watcher goroutine. It is safe to call more than once.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	am.wg.Wait()
	return am.fsnotify.Close()
}

// ShaderChanges reports the names of shaders whose stages were created or
// modified on disk.
func (am *AssetManager) ShaderChanges() <-chan string {
	return am.shaderChanges
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.closed() {
		return ErrClosed
	}
	return am.watchRecursive(name, false)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType loaders.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Has reports whether path (relative to the assets root) is indexed.
func (am *AssetManager) Has(path string) bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	_, ok := am.assets[filepath.Join(am.root, path)]
	return ok
}

// LoadShader loads the stage pair shaders/<name>.vert and shaders/<name>.frag.
func (am *AssetManager) LoadShader(name string) (renderer.ShaderSource, error) {
	base := filepath.Join(am.root, ShaderDir, name)

	am.mutex.Lock()
	for _, ext := range []string{loaders.VertexExtension, loaders.FragmentExtension} {
		asset, exists := am.assets[base+ext]
		if !exists {
			am.mutex.Unlock()
			return renderer.ShaderSource{}, fmt.Errorf("%w: %s%s", ErrAssetNotFound, base, ext)
		}
		asset.LastLoaded = time.Now()
		am.assets[base+ext] = asset
	}
	loader, loaderExists := am.loaders[loaders.ResourceTypeShader]
	am.mutex.Unlock()

	if !loaderExists {
		return renderer.ShaderSource{}, fmt.Errorf("no loader registered for asset type: %s", loaders.ResourceTypeShader)
	}
	res, err := loader.Load(base, name)
	if err != nil {
		return renderer.ShaderSource{}, err
	}
	src, ok := res.Data.(renderer.ShaderSource)
	if !ok {
		return renderer.ShaderSource{}, fmt.Errorf("shader loader returned %T", res.Data)
	}
	return src, nil
}

func (am *AssetManager) closed() bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.isClosed
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, false); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if am.handleFileEvent(e.Name) == loaders.ResourceTypeShader {
					am.notifyShader(e.Name)
				}
			}
			//Can't stat a deleted directory, so just pretend that it's always a directory and
			//try to remove from the watch list...  we really have no clue if it's a directory or not...
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
// Files created before the watch on their directory lands are picked up by the walk.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		if unWatch {
			am.removeAsset(walkPath)
		} else {
			am.handleFileEvent(walkPath)
		}
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) loaders.ResourceType {
	path = filepath.Clean(path)
	assetType := determineAssetType(path)
	if assetType == loaders.ResourceTypeNone {
		return assetType
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path: path,
		Type: assetType,
	}
	return assetType
}

func (am *AssetManager) notifyShader(path string) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	select {
	case am.shaderChanges <- name:
	default:
		// a reload for this burst is already pending
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) loaders.ResourceType {
	switch filepath.Ext(path) {
	case loaders.VertexExtension, loaders.FragmentExtension:
		return loaders.ResourceTypeShader
	default:
		return loaders.ResourceTypeNone
	}
}
